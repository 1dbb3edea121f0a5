package generation

// Creativity levels accepted in Options.
const (
	CreativityConservative = "conservative"
	CreativityBalanced     = "balanced"
	CreativityCreative     = "creative"
)

// Output formats accepted in Options.
const (
	FormatStructured = "structured"
	FormatBullet     = "bullet"
	FormatParagraph  = "paragraph"
)

// DefaultMaxIdeas is used when Options.MaxIdeas is not positive.
const DefaultMaxIdeas = 5

// Category is the part of a stored category the prompt needs.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Context is optional guidance injected into the prompt. Empty means absent.
	Context string `json:"-"`
}

// Options tune the generated prompt.
type Options struct {
	MaxIdeas          int    `json:"max_ideas,omitempty"`
	CreativityLevel   string `json:"creativity_level,omitempty"`
	Format            string `json:"format,omitempty"`
	IncludeCategories *bool  `json:"include_categories,omitempty"`
}

// WithDefaults returns a copy of o with unset fields filled in.
func (o Options) WithDefaults() Options {
	if o.MaxIdeas <= 0 {
		o.MaxIdeas = DefaultMaxIdeas
	}
	if o.CreativityLevel == "" {
		o.CreativityLevel = CreativityBalanced
	}
	if o.Format == "" {
		o.Format = FormatStructured
	}
	if o.IncludeCategories == nil {
		include := true
		o.IncludeCategories = &include
	}
	return o
}

// Request is a single idea-generation request. Categories keep the order the
// caller asked for.
type Request struct {
	Prompt     string
	Categories []Category
	Options    Options
}

// CategoryNames returns the category names in request order.
func (r Request) CategoryNames() []string {
	names := make([]string, 0, len(r.Categories))
	for _, c := range r.Categories {
		names = append(names, c.Name)
	}
	return names
}
