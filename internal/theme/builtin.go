package theme

// DefaultID is the template answered for unknown or empty ids.
const DefaultID = "modern"

var modern = Theme{
	ID:          "modern",
	Primary:     "2563EB",
	Secondary:   "3B82F6",
	Background:  "FFFFFF",
	Text:        "1F2937",
	HeadingFont: "Inter",
	BodyFont:    "Inter",
}

var builtins = []Theme{
	modern,
	{
		ID:          "corporate",
		Primary:     "1E3A5F",
		Secondary:   "F97316",
		Background:  "FFFFFF",
		Text:        "1F2937",
		HeadingFont: "Arial",
		BodyFont:    "Arial",
	},
	{
		ID:          "creative",
		Primary:     "9333EA",
		Secondary:   "EC4899",
		Background:  "FAFAFA",
		Text:        "1F2937",
		HeadingFont: "Poppins",
		BodyFont:    "Poppins",
	},
	{
		ID:          "minimal",
		Primary:     "374151",
		Secondary:   "6B7280",
		Background:  "FFFFFF",
		Text:        "1F2937",
		HeadingFont: "Helvetica",
		BodyFont:    "Helvetica",
	},
}

// Builtin returns a registry holding the four stock templates with modern as
// the default.
func Builtin() Registry {
	return Registry{defaultID: DefaultID}.Merge(builtins)
}
