package types

import "time"

// HTTPConfig holds shared HTTP settings used by sources that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "job-matcher/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// MaxRetries bounds retries on HTTP 429/503 (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// CalibrationConfig holds the parameters of the raw-similarity to score
// mapping. The same values apply to every call within one process.
type CalibrationConfig struct {
	// Floor is the lowest score ever shown (default 30).
	Floor int `json:"floor" yaml:"floor" mapstructure:"floor"`

	// Ceiling is the highest score ever shown (default 98).
	Ceiling int `json:"ceiling" yaml:"ceiling" mapstructure:"ceiling"`

	// Exponent is the concave power applied to raw similarity, in (0,1)
	// (default 0.65).
	Exponent float64 `json:"exponent" yaml:"exponent" mapstructure:"exponent"`

	// BonusPoints is added when a listing mentions a bonus term (default 3).
	BonusPoints int `json:"bonus_points" yaml:"bonus_points" mapstructure:"bonus_points"`

	// BonusTerms are the domain-priority words and phrases.
	BonusTerms []string `json:"bonus_terms" yaml:"bonus_terms" mapstructure:"bonus_terms"`

	// MaxEvidence caps the number of matched terms reported (default 10, max 20).
	MaxEvidence int `json:"max_evidence" yaml:"max_evidence" mapstructure:"max_evidence"`
}

// ProfileBucket declares a topical profile and the keywords routing
// résumé lines into it.
type ProfileBucket struct {
	Name     string   `json:"name" yaml:"name" mapstructure:"name"`
	Keywords []string `json:"keywords" yaml:"keywords" mapstructure:"keywords"`
}

// PredicateMode selects how a declared predicate uses its terms.
type PredicateMode string

const (
	// PredicateAny keeps listings mentioning at least one term.
	PredicateAny PredicateMode = "any"
	// PredicateNone keeps listings mentioning none of the terms.
	PredicateNone PredicateMode = "none"
	// PredicateLocation keeps listings whose location or text names one of the places.
	PredicateLocation PredicateMode = "location"
)

// PredicateConfig declares a named listing filter.
type PredicateConfig struct {
	Name  string        `json:"name" yaml:"name" mapstructure:"name"`
	Mode  PredicateMode `json:"mode" yaml:"mode" mapstructure:"mode"`
	Terms []string      `json:"terms" yaml:"terms" mapstructure:"terms"`
}

// SourceKind identifies the listing source implementation.
type SourceKind string

const (
	SourceFeed   SourceKind = "feed"
	SourceAdzuna SourceKind = "adzuna"
	SourcePage   SourceKind = "page"
)

// SourceConfig declares one listing source.
type SourceConfig struct {
	// Name is the provenance tag stamped on every listing.
	Name string `json:"name" yaml:"name" mapstructure:"name"`

	// Kind selects the implementation: feed, adzuna or page.
	Kind SourceKind `json:"kind" yaml:"kind" mapstructure:"kind"`

	// Disabled excludes the source without removing it from the file.
	Disabled bool `json:"disabled,omitempty" yaml:"disabled,omitempty" mapstructure:"disabled"`

	// URL is the feed or page URL. {keywords} and {location} are replaced
	// with the query-escaped request values.
	URL string `json:"url,omitempty" yaml:"url,omitempty" mapstructure:"url"`

	// Organisation and Location are defaults for listings that carry none.
	Organisation string `json:"organisation,omitempty" yaml:"organisation,omitempty" mapstructure:"organisation"`
	Location     string `json:"location,omitempty" yaml:"location,omitempty" mapstructure:"location"`

	// Filters names predicates applied to this source's batch only.
	Filters []string `json:"filters,omitempty" yaml:"filters,omitempty" mapstructure:"filters"`

	// Country is the Adzuna country code (default "gb").
	Country string `json:"country,omitempty" yaml:"country,omitempty" mapstructure:"country"`

	// ResultsPerPage and MaxPages bound Adzuna paging.
	ResultsPerPage int `json:"results_per_page,omitempty" yaml:"results_per_page,omitempty" mapstructure:"results_per_page"`
	MaxPages       int `json:"max_pages,omitempty" yaml:"max_pages,omitempty" mapstructure:"max_pages"`

	// CSS selectors for page sources.
	ItemSelector     string `json:"item_selector,omitempty" yaml:"item_selector,omitempty" mapstructure:"item_selector"`
	TitleSelector    string `json:"title_selector,omitempty" yaml:"title_selector,omitempty" mapstructure:"title_selector"`
	LinkSelector     string `json:"link_selector,omitempty" yaml:"link_selector,omitempty" mapstructure:"link_selector"`
	LocationSelector string `json:"location_selector,omitempty" yaml:"location_selector,omitempty" mapstructure:"location_selector"`
	SummarySelector  string `json:"summary_selector,omitempty" yaml:"summary_selector,omitempty" mapstructure:"summary_selector"`
}

// CacheBackend selects the retrieval cache implementation.
type CacheBackend string

const (
	CacheNone   CacheBackend = "none"
	CacheMemory CacheBackend = "memory"
	CacheSQLite CacheBackend = "sqlite"
	CacheRedis  CacheBackend = "redis"
)

// CacheConfig holds settings for the retrieval cache.
type CacheConfig struct {
	// Backend is none, memory, sqlite or redis (default memory).
	Backend CacheBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// TTL is how long a retrieved batch stays valid (default 30m).
	TTL time.Duration `json:"ttl" yaml:"ttl" mapstructure:"ttl"`

	// Path is the SQLite database file.
	Path string `json:"path,omitempty" yaml:"path,omitempty" mapstructure:"path"`

	// RedisAddr and RedisDB locate the Redis server.
	RedisAddr string `json:"redis_addr,omitempty" yaml:"redis_addr,omitempty" mapstructure:"redis_addr"`
	RedisDB   int    `json:"redis_db,omitempty" yaml:"redis_db,omitempty" mapstructure:"redis_db"`
}

// MatchConfig holds settings for the ranking pipeline.
type MatchConfig struct {
	// MaxResults truncates the ranking; 0 means no limit.
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// MinScore drops results scoring below it; 0 disables the threshold.
	MinScore int `json:"min_score" yaml:"min_score" mapstructure:"min_score"`

	// SourceTimeout bounds each source retrieval independently.
	SourceTimeout time.Duration `json:"source_timeout" yaml:"source_timeout" mapstructure:"source_timeout"`

	Calibration CalibrationConfig `json:"calibration" yaml:"calibration" mapstructure:"calibration"`

	// Buckets declares the topical profiles in priority order.
	Buckets []ProfileBucket `json:"buckets" yaml:"buckets" mapstructure:"buckets"`

	// Predicates declares the named filters available to sources.
	Predicates []PredicateConfig `json:"predicates" yaml:"predicates" mapstructure:"predicates"`

	// GlobalFilters names predicates applied to every batch.
	GlobalFilters []string `json:"global_filters,omitempty" yaml:"global_filters,omitempty" mapstructure:"global_filters"`

	// DomainFilter names the predicate applied to the merged listings.
	DomainFilter string `json:"domain_filter,omitempty" yaml:"domain_filter,omitempty" mapstructure:"domain_filter"`
}

// Config is the top-level job-matcher configuration.
type Config struct {
	HTTP       HTTPConfig     `json:"http" yaml:"http" mapstructure:"http"`
	Match      MatchConfig    `json:"match" yaml:"match" mapstructure:"match"`
	Sources    []SourceConfig `json:"sources" yaml:"sources" mapstructure:"sources"`
	Cache      CacheConfig    `json:"cache" yaml:"cache" mapstructure:"cache"`
	SecretsDir string         `json:"secrets_dir" yaml:"secrets_dir" mapstructure:"secrets_dir"`
}

// DefaultCalibration returns the built-in calibration constants.
func DefaultCalibration() CalibrationConfig {
	return CalibrationConfig{
		Floor:       30,
		Ceiling:     98,
		Exponent:    0.65,
		BonusPoints: 3,
		BonusTerms: []string{
			"civil service",
			"public sector",
			"government",
			"northern ireland",
			"belfast",
			"nics",
		},
		MaxEvidence: 10,
	}
}

// DefaultBuckets returns the built-in profile buckets.
func DefaultBuckets() []ProfileBucket {
	return []ProfileBucket{
		{Name: "technical", Keywords: []string{"software", "developer", "engineer", "engineering", "programming", "python", "java", "javascript", "golang", "sql", "cloud", "devops", "linux", "api", "database", "testing"}},
		{Name: "data", Keywords: []string{"data", "analyst", "analysis", "analytics", "statistics", "reporting", "excel", "dashboard", "tableau", "spreadsheet"}},
		{Name: "hospitality", Keywords: []string{"hospitality", "hotel", "restaurant", "bar", "chef", "kitchen", "catering", "waiter", "waitress", "barista", "front of house"}},
		{Name: "operations", Keywords: []string{"operations", "logistics", "warehouse", "supply chain", "inventory", "scheduling", "procurement", "forklift", "dispatch"}},
		{Name: "administration", Keywords: []string{"administration", "administrative", "admin", "office", "clerical", "reception", "receptionist", "records", "filing", "secretary"}},
		{Name: "care", Keywords: []string{"care", "carer", "nursing", "nurse", "patient", "support worker", "healthcare", "social care"}},
	}
}

// DefaultPredicates returns the built-in named filters.
func DefaultPredicates() []PredicateConfig {
	return []PredicateConfig{
		{Name: "northern-ireland", Mode: PredicateLocation, Terms: []string{"northern ireland", "belfast", "derry", "londonderry", "lisburn", "newry", "armagh", "bangor", "craigavon", "ballymena", "omagh", "enniskillen", "coleraine"}},
		{Name: "public-sector", Mode: PredicateAny, Terms: []string{"civil service", "public sector", "government", "department", "council", "nics", "hscni", "agency"}},
		{Name: "no-red-flags", Mode: PredicateNone, Terms: []string{"commission only", "unpaid", "pyramid", "mlm", "pay to apply", "self-employed franchise"}},
	}
}

// DefaultSources returns the built-in listing sources.
func DefaultSources() []SourceConfig {
	return []SourceConfig{
		{
			Name:     "indeed-ni",
			Kind:     SourceFeed,
			URL:      "https://www.indeed.co.uk/rss?q={keywords}&l={location}",
			Location: "Northern Ireland",
		},
		{
			Name:         "civil-service",
			Kind:         SourceFeed,
			URL:          "https://www.civilservicejobs.service.gov.uk/csr/index.cgi/rss",
			Organisation: "UK Civil Service",
			Filters:      []string{"northern-ireland"},
		},
		{
			Name:           "adzuna",
			Kind:           SourceAdzuna,
			Country:        "gb",
			ResultsPerPage: 50,
			MaxPages:       2,
		},
	}
}

// DefaultConfig returns a Config populated with built-in defaults.
func DefaultConfig() Config {
	return Config{
		HTTP: HTTPConfig{
			Timeout:    20 * time.Second,
			UserAgent:  "job-matcher/0.1",
			MaxRetries: 3,
		},
		Match: MatchConfig{
			MaxResults:    25,
			MinScore:      0,
			SourceTimeout: 15 * time.Second,
			Calibration:   DefaultCalibration(),
			Buckets:       DefaultBuckets(),
			Predicates:    DefaultPredicates(),
			GlobalFilters: []string{"no-red-flags"},
		},
		Sources: DefaultSources(),
		Cache: CacheConfig{
			Backend: CacheMemory,
			TTL:     30 * time.Minute,
			Path:    ".cache/listings.db",
		},
		SecretsDir: ".secrets/",
	}
}
