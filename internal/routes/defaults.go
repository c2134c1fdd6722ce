package routes

const (
	NameDashboard   = "Dashboard"
	NameSettings    = "Settings"
	NameIPDetection = "IPDetection"
	NamePodMonitor  = "PodMonitor"
)

const (
	ComponentDashboard   ComponentRef = "DashboardView"
	ComponentSettings    ComponentRef = "SettingsView"
	ComponentIPDetection ComponentRef = "IPDetectionView"
	ComponentPodMonitor  ComponentRef = "PodMonitorView"
)

// Definitions returns the dashboard pages in the order they are matched.
func Definitions() []Route {
	return []Route{
		{
			Path:      "/",
			Name:      NameDashboard,
			Component: ComponentDashboard,
		},
		{
			Path:      "/settings",
			Name:      NameSettings,
			Component: ComponentSettings,
		},
		{
			Path:      "/ip-detection",
			Name:      NameIPDetection,
			Component: ComponentIPDetection,
			Meta:      map[string]string{MetaTitle: "IP检测"},
		},
		{
			Path:      "/pod-monitor",
			Name:      NamePodMonitor,
			Component: ComponentPodMonitor,
			Meta:      map[string]string{MetaTitle: "Pod监控"},
		},
	}
}

// Default builds the dashboard's route table.
func Default() (*Table, error) {
	return New(Definitions()...)
}
