package domain

// Direction selects a neighbour in a sibling lookup
type Direction int

const (
	DirPrev Direction = iota
	DirNext
)

func (d Direction) String() string {
	if d == DirPrev {
		return "prev"
	}
	return "next"
}

// SiblingResolver maps (current id, direction) to the neighbouring item id.
// An empty string means there is no sibling in that direction.
type SiblingResolver func(id string, dir Direction) string

// SiblingsOf builds a resolver over an ordered id list.
func SiblingsOf(ids []string) SiblingResolver {
	pos := make(map[string]int, len(ids))
	for i, id := range ids {
		pos[id] = i
	}
	return func(id string, dir Direction) string {
		i, ok := pos[id]
		if !ok {
			return ""
		}
		switch dir {
		case DirPrev:
			if i > 0 {
				return ids[i-1]
			}
		case DirNext:
			if i < len(ids)-1 {
				return ids[i+1]
			}
		}
		return ""
	}
}
