package mission

// Migrate upgrades a mission loaded from storage to the current shape:
// assignedTo is always a list, department defaults to "Operations" and every
// log has an author. Running it on an already migrated mission changes nothing.
//
// Legacy scalar assignedTo values are resolved to a list by the record decoder
// before they reach this function; a nil list here means the field was
// missing or null.
func Migrate(m *Mission) *Mission {
	out := m.Clone()

	if out.AssignedTo == nil {
		out.AssignedTo = []string{}
	}
	if out.Department == "" {
		out.Department = DefaultDepartment
	}
	if out.Logs == nil {
		out.Logs = []Log{}
	}
	for i := range out.Logs {
		if out.Logs[i].Author == "" {
			out.Logs[i].Author = DefaultLogAuthor
		}
	}

	return out
}

// MigrateAll applies Migrate to every mission, preserving order.
func MigrateAll(missions []*Mission) []*Mission {
	out := make([]*Mission, len(missions))
	for i, m := range missions {
		out[i] = Migrate(m)
	}
	return out
}
