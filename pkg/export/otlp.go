package export

import (
	"encoding/json"
	"fmt"

	"github.com/kumarabd/ingestion-plane/loggen/pkg/logtypes"
	"go.opentelemetry.io/collector/pdata/pcommon"
	"go.opentelemetry.io/collector/pdata/plog"
	"go.opentelemetry.io/collector/pdata/plog/plogotlp"
)

// ScopeName is the instrumentation scope attached to exported records
const ScopeName = "loggen"

var severityNumbers = map[string]plog.SeverityNumber{
	string(logtypes.LevelInfo):  plog.SeverityNumberInfo,
	string(logtypes.LevelWarn):  plog.SeverityNumberWarn,
	string(logtypes.LevelError): plog.SeverityNumberError,
}

// ToOTLP converts generated records into OTLP logs. Records are grouped into
// one ResourceLogs per source, in order of first appearance.
func ToOTLP(records []logtypes.Record) (plog.Logs, error) {
	logs := plog.NewLogs()
	scopes := make(map[string]plog.ScopeLogs)

	for i, record := range records {
		source := record.Source()
		scope, ok := scopes[source]
		if !ok {
			rl := logs.ResourceLogs().AppendEmpty()
			rl.Resource().Attributes().PutStr("service.name", source)
			scope = rl.ScopeLogs().AppendEmpty()
			scope.Scope().SetName(ScopeName)
			scopes[source] = scope
		}

		body, err := toMap(record)
		if err != nil {
			return plog.Logs{}, fmt.Errorf("record %d: %w", i, err)
		}

		lr := scope.LogRecords().AppendEmpty()
		lr.SetTimestamp(pcommon.NewTimestampFromTime(record.Time()))
		if severity := record.Severity(); severity != "" {
			lr.SetSeverityText(severity)
			lr.SetSeverityNumber(severityNumbers[severity])
		}
		if err := lr.Body().SetEmptyMap().FromRaw(body); err != nil {
			return plog.Logs{}, fmt.Errorf("record %d: %w", i, err)
		}
	}

	return logs, nil
}

// MarshalJSON renders records as an OTLP/JSON ExportLogsServiceRequest
func MarshalJSON(records []logtypes.Record) ([]byte, error) {
	logs, err := ToOTLP(records)
	if err != nil {
		return nil, err
	}
	req := plogotlp.NewExportRequestFromLogs(logs)
	return req.MarshalJSON()
}

// toMap converts a record to its JSON object form
func toMap(record logtypes.Record) (map[string]any, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}
