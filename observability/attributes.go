package observability

import "go.opentelemetry.io/otel/attribute"

const (
	attrEngine = "engine"
	attrStatus = "status"
)

func engineAttr(engine string) attribute.KeyValue {
	return attribute.String(attrEngine, engine)
}

func statusAttr(status string) attribute.KeyValue {
	return attribute.String(attrStatus, status)
}
