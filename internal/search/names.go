package search

// NameEntry maps a lowercase color name to a representative color and a
// handful of reference colors spanning its common shades.
type NameEntry struct {
	Name           string   `json:"name"`
	Representative string   `json:"representative"`
	References     []string `json:"references"`
}

// nameTable is ordered; partial lookups return the first hit in this order.
var nameTable = []NameEntry{
	{"red", "#FF0000", []string{"#FF0000", "#DC143C", "#B22222", "#8B0000", "#FF6347", "#FF4500", "#CD5C5C", "#F08080"}},
	{"green", "#00FF00", []string{"#00FF00", "#008000", "#228B22", "#32CD32", "#90EE90", "#00FF7F", "#7CFC00", "#ADFF2F"}},
	{"blue", "#0000FF", []string{"#0000FF", "#000080", "#4169E1", "#6495ED", "#87CEEB", "#4682B4", "#1E90FF", "#00BFFF"}},
	{"yellow", "#FFFF00", []string{"#FFFF00", "#FFD700", "#FFFF99", "#F0E68C", "#BDB76B", "#DAA520", "#FAFAD2", "#FFFACD"}},
	{"orange", "#FFA500", []string{"#FFA500", "#FF8C00", "#FF7F50", "#FF6347", "#FF4500", "#CD853F", "#D2691E", "#FF8C69"}},
	{"purple", "#800080", []string{"#800080", "#9932CC", "#9400D3", "#8A2BE2", "#BA55D3", "#DA70D6", "#DDA0DD", "#E6E6FA"}},
	{"pink", "#FFC0CB", []string{"#FFC0CB", "#FF69B4", "#FF1493", "#C71585", "#DB7093", "#FFB6C1", "#FF91A4", "#FFA0C9"}},
	{"black", "#000000", []string{"#000000", "#2F2F2F", "#1C1C1C", "#0D0D0D", "#191970", "#2F4F4F", "#36454F", "#28282B"}},
	{"white", "#FFFFFF", []string{"#FFFFFF", "#F8F8FF", "#F5F5F5", "#DCDCDC", "#D3D3D3", "#C0C0C0", "#E5E4E2", "#F0F0F0"}},
	{"gray", "#808080", []string{"#808080", "#696969", "#778899", "#708090", "#2F4F4F", "#A9A9A9", "#BEBEBE", "#D3D3D3"}},
	{"grey", "#808080", []string{"#808080", "#696969", "#778899", "#708090", "#2F4F4F", "#A9A9A9", "#BEBEBE", "#D3D3D3"}},
	{"brown", "#A52A2A", []string{"#A52A2A", "#8B4513", "#D2691E", "#CD853F", "#DEB887", "#F4A460", "#D2B48C", "#BC8F8F"}},
	{"cyan", "#00FFFF", []string{"#00FFFF", "#E0FFFF", "#00CED1", "#48D1CC", "#40E0D0", "#7FFFD4", "#B0E0E6", "#AFEEEE"}},
	{"magenta", "#FF00FF", []string{"#FF00FF", "#DA70D6", "#BA55D3", "#C71585", "#FF1493", "#FF69B4", "#EE82EE", "#DDA0DD"}},
	{"lime", "#00FF00", []string{"#00FF00", "#32CD32", "#7CFC00", "#ADFF2F", "#9AFF9A", "#98FB98", "#00FA9A", "#90EE90"}},
	{"navy", "#000080", []string{"#000080", "#191970", "#25025C", "#0F0F50", "#1E1E3F", "#2F2F4F", "#36454F", "#483D8B"}},
	{"teal", "#008080", []string{"#008080", "#20B2AA", "#48D1CC", "#00CED1", "#5F9EA0", "#708090", "#2F4F4F", "#4682B4"}},
	{"silver", "#C0C0C0", []string{"#C0C0C0", "#D3D3D3", "#DCDCDC", "#E5E4E2", "#BCC6CC", "#A8A8A8", "#B8B8B8", "#BEBEBE"}},
	{"gold", "#FFD700", []string{"#FFD700", "#DAA520", "#B8860B", "#CD853F", "#DEB887", "#F0E68C", "#EEE8AA", "#FFDF00"}},
	{"violet", "#8A2BE2", []string{"#8A2BE2", "#9400D3", "#9932CC", "#BA55D3", "#DA70D6", "#DDA0DD", "#EE82EE", "#E6E6FA"}},
	{"indigo", "#4B0082", []string{"#4B0082", "#483D8B", "#6A5ACD", "#7B68EE", "#9370DB", "#8470FF", "#9966CC", "#663399"}},
	{"turquoise", "#40E0D0", []string{"#40E0D0", "#48D1CC", "#00CED1", "#5F9EA0", "#20B2AA", "#7FFFD4", "#AFEEEE", "#B0E0E6"}},
	{"coral", "#FF7F50", []string{"#FF7F50", "#F08080", "#FA8072", "#E9967A", "#FFA07A", "#FF6347", "#FF5722", "#FF4500"}},
	{"salmon", "#FA8072", []string{"#FA8072", "#FFA07A", "#E9967A", "#F08080", "#CD5C5C", "#BC8F8F", "#FFB07A", "#FF8C69"}},
	// Common misspelling of "green".
	{"sean", "#32CD32", []string{"#7CFC00", "#32CD32", "#00FF7F", "#ADFF2F", "#9AFF9A"}},
	{"emerald", "#50C878", []string{"#50C878", "#00C957", "#4CBB17", "#228B22", "#006A4E"}},
	{"aqua", "#00FFFF", []string{"#00FFFF", "#7FFFD4", "#40E0D0", "#48D1CC", "#00CED1"}},
	{"crimson", "#DC143C", []string{"#DC143C", "#B22222", "#8B0000", "#A0522D", "#CD5C5C"}},
	{"azure", "#F0FFFF", []string{"#F0FFFF", "#E0FFFF", "#B0E0E6", "#87CEEB", "#4682B4"}},
}

var nameIndex = func() map[string]int {
	idx := make(map[string]int, len(nameTable))
	for i, e := range nameTable {
		idx[e.Name] = i
	}
	return idx
}()

// Lookup returns the table entry for an exact lowercase name.
func Lookup(name string) (NameEntry, bool) {
	i, ok := nameIndex[name]
	if !ok {
		return NameEntry{}, false
	}
	return nameTable[i], true
}

// Names returns a copy of the name table in table order.
func Names() []NameEntry {
	out := make([]NameEntry, len(nameTable))
	for i, e := range nameTable {
		e.References = append([]string(nil), e.References...)
		out[i] = e
	}
	return out
}
