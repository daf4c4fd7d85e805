package connected

// Event describes one membership change.
type Event struct {
	Op       Op
	Member   Instance // the instance whose field was written
	Target   Instance // the owner of the collection
	Identity Identity
	Field    string // the written field of Member
}
