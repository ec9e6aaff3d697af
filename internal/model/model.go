package model

// TabDescriptor is one entry of the tab strip. Order defines adjacency for
// transition direction; descriptors are immutable once loaded.
type TabDescriptor struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
	Order int    `json:"order" yaml:"order"`

	// Header card shown above the tab body.
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Summary  string `json:"summary,omitempty" yaml:"summary,omitempty"`
}

type ProjectLinks struct {
	Live   string `json:"live,omitempty" yaml:"live,omitempty"`
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
}

type Project struct {
	ID              string       `json:"id" yaml:"id"`
	Title           string       `json:"title" yaml:"title"`
	Category        string       `json:"category" yaml:"category"`
	Description     string       `json:"description" yaml:"description"`
	LongDescription string       `json:"longDescription" yaml:"longDescription"`
	Tools           []string     `json:"tools" yaml:"tools"`
	Thumbnail       string       `json:"thumbnail" yaml:"thumbnail"`
	Images          []string     `json:"images" yaml:"images"`
	Year            string       `json:"year,omitempty" yaml:"year,omitempty"`
	Duration        string       `json:"duration,omitempty" yaml:"duration,omitempty"`
	Links           ProjectLinks `json:"links,omitempty" yaml:"links,omitempty"`
}

// AllImages returns the thumbnail followed by the gallery images. The modal
// viewer indexes into this sequence.
func (p Project) AllImages() []string {
	out := make([]string, 0, 1+len(p.Images))
	out = append(out, p.Thumbnail)
	out = append(out, p.Images...)
	return out
}

// ImageCount is len(AllImages()) without allocating.
func (p Project) ImageCount() int { return 1 + len(p.Images) }

type Profile struct {
	Name     string   `json:"name" yaml:"name"`
	Role     string   `json:"role" yaml:"role"`
	Location string   `json:"location,omitempty" yaml:"location,omitempty"`
	Bio      string   `json:"bio,omitempty" yaml:"bio,omitempty"`
	Links    []Link   `json:"links,omitempty" yaml:"links,omitempty"`
	Tags     []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

type Link struct {
	Label string `json:"label" yaml:"label"`
	URL   string `json:"url" yaml:"url"`
}

// Content is the static, read-only portfolio: tabs, per-tab markdown bodies
// and the project list. Bodies are keyed by tab id; the projects tab renders
// the gallery instead of a body.
type Content struct {
	Profile  Profile           `json:"profile" yaml:"profile"`
	Tabs     []TabDescriptor   `json:"tabs" yaml:"tabs"`
	Bodies   map[string]string `json:"bodies" yaml:"bodies"`
	Projects []Project         `json:"projects" yaml:"projects"`
}
