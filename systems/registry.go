package systems

// System IDs in tick order. The tick driver runs exactly this sequence.
const (
	SystemJump     = "jump"
	SystemHover    = "hover"
	SystemRotation = "rotation"
	SystemPatrol   = "patrol"
	SystemMovement = "movement"
	SystemDamping  = "damping"
	SystemPhysics  = "physics"
)

// SystemInfo names a system for the pipeline, the perf tracker and the UI.
type SystemInfo struct {
	ID          string
	Name        string
	Description string
	Category    string // input, core or engine
}

// Tick order. Hover writes the vertical force before movement preserves it, and
// damping must see the force movement just wrote.
var tickOrder = []SystemInfo{
	{SystemJump, "Jump", "Applies jump impulses to grounded bodies", "input"},
	{SystemHover, "Hover", "Spring-damper ride height and ground contact", "core"},
	{SystemRotation, "Rotation", "Faces bodies along their movement direction", "core"},
	{SystemPatrol, "Patrol", "Moves platforms along waypoint loops", "core"},
	{SystemMovement, "Movement", "Direction-aware horizontal acceleration", "core"},
	{SystemDamping, "Damping", "Velocity-proportional drag and soft top speed", "core"},
	{SystemPhysics, "Physics", "Integrates forces and impulses", "engine"},
}

// SystemRegistry is the single source of system order and naming.
type SystemRegistry struct {
	systems []SystemInfo
}

func NewSystemRegistry() *SystemRegistry {
	return &SystemRegistry{systems: append([]SystemInfo(nil), tickOrder...)}
}

// Get looks a system up by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	for _, info := range r.systems {
		if info.ID == id {
			return info, true
		}
	}
	return SystemInfo{}, false
}

// GetName returns the display name for id, or id itself when it is not a system
// (the sync and telemetry phases, for example).
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.Get(id); ok {
		return info.Name
	}
	return id
}

func (r *SystemRegistry) ByCategory(category string) []SystemInfo {
	var out []SystemInfo
	for _, info := range r.systems {
		if info.Category == category {
			out = append(out, info)
		}
	}
	return out
}

// IDs lists system IDs in tick order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
