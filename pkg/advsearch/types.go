package advsearch

// Request is the search request the host is rendering.
// When Params is nil the parameters are taken from the URL query.
type Request struct {
	URL    string
	Params map[string]string
}

// User identifies the requesting actor. A zero User is anonymous.
type User struct {
	ID    int64
	Name  string
	Named bool
}

// Outcome is what the host adds to the search-results page.
type Outcome struct {
	Active       bool
	HTML         string
	Modules      []string
	ModuleStyles []string
	ConfigVars   map[string]any
}

// Preference is a preference declaration for the host's preferences form.
type Preference struct {
	Key          string
	Type         string
	LabelMessage string
	Section      string
	HelpMessage  string
}

// SearchSettings mirrors the search section of the server config.
// Zero fields take the server defaults.
type SearchSettings struct {
	FileExtensions       []string
	MimeOverrides        map[string]string
	NamespacePresets     map[string]any
	DeepCategoryEnabled  bool
	DefaultNamespaces    []int
	SearchableNamespaces map[int]string
	MainNamespaceLabel   string
}
