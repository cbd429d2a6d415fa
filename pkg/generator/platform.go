package generator

import (
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/kumarabd/ingestion-plane/loggen/pkg/logtypes"
)

const (
	appName       = "china-bank"
	userDomain    = "@chinabank.com"
	containerPool = 10
)

var (
	scalingDeltas   = []int{-2, -1, 1, 2}
	crashReasons    = []string{"Out of memory", "Unhandled exception", "Deadlock detected"}
	memorySizes     = []int{512, 1024, 2048}
	diskQuotas      = []int{1024, 2048, 4096}
	updateUsers     = []string{"admin", "developer", "ops"}
	auditUsers      = []string{"security", "admin", "system"}
	auditActions    = []string{"PASSWORD_CHANGE", "ROLE_UPDATE", "ACCESS_GRANTED"}
	auditStatuses   = []string{"SUCCESS", "FAILURE"}
	routeActions    = []string{"MAP", "UNMAP"}
	bindingActions  = []string{"BIND", "UNBIND"}
	bindingServices = []string{"mysql-db", "redis-cache", "elasticsearch"}
	healthStatuses  = []string{"PASSED", "FAILED"}
)

// PlatformGenerator generates PCF-style application lifecycle events
type PlatformGenerator struct{}

// containerIDs draws the candidate container identifiers for one event
func containerIDs(r *rand.Rand) []string {
	ids := make([]string, containerPool)
	for i := range ids {
		ids[i] = hexID(r, 12)
	}
	return ids
}

func (g *PlatformGenerator) Generate(r *rand.Rand, now time.Time) logtypes.Record {
	ids := containerIDs(r)

	event := &logtypes.PlatformEvent{
		Timestamp: pastTimestamp(r, now),
		EventType: pick(r, logtypes.EventTypes),
		AppName:   appName,
	}
	event.InstanceIndex = r.IntN(containerPool)
	event.ContainerID = ids[event.InstanceIndex]

	switch event.EventType {
	case logtypes.EventAppStart:
		event.Message = "Application started successfully"
	case logtypes.EventContainerMetric:
		cpu := intBetween(r, 1, 100)
		memory := int64Between(r, 100_000_000, 1_000_000_000)
		disk := int64Between(r, 500_000_000, 2_000_000_000)
		event.CPUPercentage = &cpu
		event.MemoryBytes = &memory
		event.DiskBytes = &disk
	case logtypes.EventAppLog:
		event.Message = "Processing transaction for customer ID: " + strconv.Itoa(intBetween(r, 10000, 99999))
	case logtypes.EventHealthCheck:
		event.Status = pick(r, healthStatuses)
		if event.Status == "PASSED" {
			event.Details = "All endpoints responding within threshold"
		} else {
			event.Details = "Database connection timeout"
		}
	case logtypes.EventScaling:
		previous := intBetween(r, 5, 15)
		count := &logtypes.InstanceCount{
			Previous: previous,
			Current:  previous + pick(r, scalingDeltas),
		}
		event.InstanceCount = count
		if count.Current > count.Previous {
			event.Reason = "Increased load detected"
		} else {
			event.Reason = "Decreased load detected"
		}
	case logtypes.EventAppCrash:
		event.Reason = pick(r, crashReasons)
		event.ExitDescription = "Container terminated due to " + event.Reason
	case logtypes.EventAppUpdate:
		event.Changes = &logtypes.Changes{
			Instances: intBetween(r, 5, 15),
			Memory:    pick(r, memorySizes),
			DiskQuota: pick(r, diskQuotas),
		}
		event.User = pick(r, updateUsers) + userDomain
	case logtypes.EventRouteUpdate:
		event.Route = "api.chinabank.com/v" + strconv.Itoa(intBetween(r, 1, 3))
		event.Action = pick(r, routeActions)
	case logtypes.EventServiceBinding:
		event.ServiceInstance = pick(r, bindingServices)
		event.Action = pick(r, bindingActions)
	case logtypes.EventAudit:
		event.User = pick(r, auditUsers) + userDomain
		event.Action = pick(r, auditActions)
		event.Status = pick(r, auditStatuses)
	}

	return event
}

func (g *PlatformGenerator) Description() string {
	return "Platform lifecycle events: starts, metrics, health checks, scaling, crashes and audits"
}
