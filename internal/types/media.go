package types

// Category is the kind of file an entry was classified as.
type Category int

const (
	Unclassified Category = iota
	Video
	Subtitle
)

func (c Category) String() string {
	switch c {
	case Video:
		return "video"
	case Subtitle:
		return "subtitle"
	default:
		return "unclassified"
	}
}

// MediaFile is a classified directory entry.
type MediaFile struct {
	Path      string // Full path as known to the transport
	Name      string // Final path element
	BaseName  string // Name without its final extension
	Extension string // Lower-cased, no leading dot
	Category  Category
}
