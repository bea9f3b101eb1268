package model

// AppConfig holds user preferences persisted between runs.
type AppConfig struct {
	WindowWidth    float32  `json:"window_width"`
	WindowHeight   float32  `json:"window_height"`
	LastExportDir  string   `json:"last_export_dir"`
	ShareBaseURL   string   `json:"share_base_url"`
	RecentProblems []string `json:"recent_problems"`
}

// DefaultAppConfig returns sensible defaults for a first run.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		WindowWidth:    1200,
		WindowHeight:   800,
		ShareBaseURL:   "https://gridfit.app/",
		RecentProblems: []string{},
	}
}

// AddRecentProblem records a problem file path at the front of the recent
// list, deduplicating and keeping at most ten entries.
func (c *AppConfig) AddRecentProblem(path string) {
	out := []string{path}
	for _, p := range c.RecentProblems {
		if p != path && len(out) < 10 {
			out = append(out, p)
		}
	}
	c.RecentProblems = out
}
