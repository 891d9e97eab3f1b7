package instance

// Document is the YAML form of a problem.
type Document struct {
	ID          string         `yaml:"id"`
	Diversifier int            `yaml:"diversifier"`
	Times       []string       `yaml:"times"`
	TimeGroups  []TimeGroupDoc `yaml:"time_groups"`
	Resources   []string       `yaml:"resources"`
	Nodes       []NodeDoc      `yaml:"nodes"`
	Zones       []ZoneDoc      `yaml:"zones"`
	Spreads     []SpreadDoc    `yaml:"spreads"`
	Monitors    []MonitorDoc   `yaml:"monitors"`
	Layers      []LayerDoc     `yaml:"layers"`
}

// TimeGroupDoc is a named set of times.
type TimeGroupDoc struct {
	ID    string   `yaml:"id"`
	Times []string `yaml:"times"`
}

// NodeDoc is a node and its meets.
type NodeDoc struct {
	ID     string    `yaml:"id"`
	Parent string    `yaml:"parent"`
	Meets  []MeetDoc `yaml:"meets"`
}

// MeetDoc is one meet.
type MeetDoc struct {
	ID        string   `yaml:"id"`
	Duration  int      `yaml:"duration"`
	CycleTime string   `yaml:"cycle_time"`
	Domain    string   `yaml:"domain"`
	Resources []string `yaml:"resources"`
	Assign    *AsstDoc `yaml:"assign"`
	Fixed     bool     `yaml:"fixed"`
}

// AsstDoc places a meet at an offset of another.
type AsstDoc struct {
	Meet   string `yaml:"meet"`
	Offset int    `yaml:"offset"`
}

// ZoneDoc is a zone of a node.
type ZoneDoc struct {
	ID      string          `yaml:"id"`
	Node    string          `yaml:"node"`
	Offsets []MeetOffsetDoc `yaml:"offsets"`
}

// MeetOffsetDoc lists offsets of one meet.
type MeetOffsetDoc struct {
	Meet    string `yaml:"meet"`
	Offsets []int  `yaml:"offsets"`
}

// SpreadDoc is a spread constraint.
type SpreadDoc struct {
	ID     string            `yaml:"id"`
	Groups []LimitedGroupDoc `yaml:"groups"`
}

// LimitedGroupDoc bounds the starts in one time group.
type LimitedGroupDoc struct {
	Group string `yaml:"group"`
	Min   int    `yaml:"min"`
	Max   int    `yaml:"max"`
}

// WeightDoc is a cost weight.
type WeightDoc struct {
	Hard int64 `yaml:"hard"`
	Soft int64 `yaml:"soft"`
}

// MonitorDoc is one monitor. Kind selects which other fields apply:
//
//	avoid_clashes        resource
//	prefer_times         meets, group
//	spread_events        meets, spread
//	limit_idle_times     resource, groups, min, max
//	cluster_busy_times   resource, groups, min, max
//	limit_busy_times     resource, groups, min, max
type MonitorDoc struct {
	ID       string    `yaml:"id"`
	Kind     string    `yaml:"kind"`
	Weight   WeightDoc `yaml:"weight"`
	Resource string    `yaml:"resource"`
	Meets    []string  `yaml:"meets"`
	Group    string    `yaml:"group"`
	Groups   []string  `yaml:"groups"`
	Spread   string    `yaml:"spread"`
	Min      int       `yaml:"min"`
	Max      int       `yaml:"max"`
}

// LayerDoc is one layer.
type LayerDoc struct {
	ID        string   `yaml:"id"`
	Parent    string   `yaml:"parent"`
	Children  []string `yaml:"children"`
	Resources []string `yaml:"resources"`
	Spread    string   `yaml:"spread"`
}
