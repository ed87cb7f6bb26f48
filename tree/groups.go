package tree

// groupKindFor resolves an environment or group name to its specialized
// GroupKind, mirroring tex_node_groups.cpp's Group::make lookup table
// (name -> constructor). Names absent from the table get KindPlain, the
// table's default_value.
func groupKindFor(name string) GroupKind {
	switch name {
	case "frac":
		return KindFrac
	case "par":
		return KindPar
	case "root", "document":
		return KindVertical
	default:
		return KindPlain
	}
}

// MakeGroup constructs a Group of the kind appropriate for name, the Go
// equivalent of calling tex_node_groups.cpp's Group::make directly
// (rather than via tokenizing an environment) — used by edit operations
// that insert a new structural group, e.g. edit.BreakParagraph's new Par.
func MakeGroup(name string) *Group {
	return &Group{Data: name, Kind: groupKindFor(name)}
}
