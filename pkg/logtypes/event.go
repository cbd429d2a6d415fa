package logtypes

import "time"

// EventType is the kind of platform lifecycle event
type EventType string

const (
	EventAppStart        EventType = "APP_START"
	EventContainerMetric EventType = "CONTAINER_METRIC"
	EventAppLog          EventType = "APP_LOG"
	EventHealthCheck     EventType = "HEALTH_CHECK"
	EventScaling         EventType = "SCALING"
	EventAppCrash        EventType = "APP_CRASH"
	EventAppUpdate       EventType = "APP_UPDATE"
	EventRouteUpdate     EventType = "ROUTE_UPDATE"
	EventServiceBinding  EventType = "SERVICE_BINDING"
	EventAudit           EventType = "AUDIT"
)

// EventTypes lists every platform event type in declaration order
var EventTypes = []EventType{
	EventAppStart,
	EventContainerMetric,
	EventAppLog,
	EventHealthCheck,
	EventScaling,
	EventAppCrash,
	EventAppUpdate,
	EventRouteUpdate,
	EventServiceBinding,
	EventAudit,
}

// InstanceCount is the before/after pair of a scaling event
type InstanceCount struct {
	Previous int `json:"previous"`
	Current  int `json:"current"`
}

// Changes describes the new settings applied by an app update
type Changes struct {
	Instances int `json:"instances"`
	Memory    int `json:"memory"`
	DiskQuota int `json:"disk_quota"`
}

// PlatformEvent represents a PCF-style application lifecycle event.
// Fields after ContainerID depend on EventType.
type PlatformEvent struct {
	Timestamp     Timestamp `json:"timestamp"`
	EventType     EventType `json:"event_type"`
	AppName       string    `json:"app_name"`
	InstanceIndex int       `json:"instance_index"`
	ContainerID   string    `json:"container_id"`

	Message         string         `json:"message,omitempty"`
	CPUPercentage   *int           `json:"cpu_percentage,omitempty"`
	MemoryBytes     *int64         `json:"memory_bytes,omitempty"`
	DiskBytes       *int64         `json:"disk_bytes,omitempty"`
	Status          string         `json:"status,omitempty"`
	Details         string         `json:"details,omitempty"`
	InstanceCount   *InstanceCount `json:"instance_count,omitempty"`
	Reason          string         `json:"reason,omitempty"`
	ExitDescription string         `json:"exit_description,omitempty"`
	Changes         *Changes       `json:"changes,omitempty"`
	User            string         `json:"user,omitempty"`
	Route           string         `json:"route,omitempty"`
	Action          string         `json:"action,omitempty"`
	ServiceInstance string         `json:"service_instance,omitempty"`
}

func (e *PlatformEvent) Time() time.Time  { return e.Timestamp.Time }
func (e *PlatformEvent) Severity() string { return "" }
func (e *PlatformEvent) Source() string   { return e.AppName }
