package model

// Default object sizes in stage pixels.
const (
	DefaultBinSize     = 30.0
	DefaultDoorWidth   = 40.0
	DefaultDoorDepth   = 10.0
	DefaultObjectWidth = 60.0
)

// Catalog holds the object types the user can place, grouped by kind.
// Catalogs are normally supplied from outside (imported files); the
// built-in catalog only covers the common cases.
type Catalog struct {
	Bins   []TypeDescriptor `json:"bins" yaml:"bins"`
	Doors  []TypeDescriptor `json:"doors" yaml:"doors"`
	Others []TypeDescriptor `json:"others" yaml:"others"`
}

func binType(name, color string) TypeDescriptor {
	return TypeDescriptor{Kind: KindBin, Name: name, Width: DefaultBinSize, Height: DefaultBinSize, Color: color}
}

// DefaultCatalog returns a catalog populated with the standard waste
// fractions, door widths and a few fixtures.
func DefaultCatalog() Catalog {
	return Catalog{
		Bins: []TypeDescriptor{
			binType("Restavfall", "#607d8b"),
			binType("Matavfall", "#795548"),
			binType("Papp og papir", "#2196f3"),
			binType("Plastemballasje", "#9c27b0"),
			binType("Glass- og metallemballasje", "#00bcd4"),
			binType("Farlig avfall", "#f44336"),
		},
		Doors: []TypeDescriptor{
			{Kind: KindDoor, Name: "Enkel dør", Width: DefaultDoorWidth, Height: DefaultDoorDepth},
			{Kind: KindDoor, Name: "Dobbel dør", Width: 2 * DefaultDoorWidth, Height: DefaultDoorDepth},
		},
		Others: []TypeDescriptor{
			{Kind: KindOther, Name: "Benk", Width: DefaultObjectWidth, Height: 25, Color: "#ff9800"},
			{Kind: KindOther, Name: "Hylle", Width: DefaultObjectWidth, Height: 15, Color: "#8bc34a"},
			{Kind: KindOther, Name: "Vask", Width: 30, Height: 25, Color: "#9e9e9e"},
		},
	}
}

// Types returns the descriptors of one kind.
func (c Catalog) Types(kind Kind) []TypeDescriptor {
	switch kind {
	case KindBin:
		return c.Bins
	case KindDoor:
		return c.Doors
	case KindOther:
		return c.Others
	default:
		return nil
	}
}

// Find returns the descriptor with the given kind and name.
func (c Catalog) Find(kind Kind, name string) (TypeDescriptor, bool) {
	for _, t := range c.Types(kind) {
		if t.Name == name {
			return t, true
		}
	}
	return TypeDescriptor{}, false
}

// Names returns the descriptor names of one kind for UI menus.
func (c Catalog) Names(kind Kind) []string {
	types := c.Types(kind)
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.Name
	}
	return names
}

// Add appends a descriptor to the collection matching its kind.
// Unknown kinds are ignored.
func (c *Catalog) Add(t TypeDescriptor) {
	switch t.Kind {
	case KindBin:
		c.Bins = append(c.Bins, t)
	case KindDoor:
		c.Doors = append(c.Doors, t)
	case KindOther:
		c.Others = append(c.Others, t)
	}
}

// Len returns the total number of descriptors.
func (c Catalog) Len() int {
	return len(c.Bins) + len(c.Doors) + len(c.Others)
}
