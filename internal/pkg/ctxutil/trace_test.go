package ctxutil

import (
	"context"
	"testing"
)

func TestWithTraceData(t *testing.T) {
	ctx := WithTraceData(nil, &TraceData{TraceID: "t1", RequestID: "r1"})
	if td := GetTraceData(ctx); td == nil || td.TraceID != "t1" {
		t.Fatalf("trace data: %+v", td)
	}
	if got := RequestID(ctx); got != "r1" {
		t.Fatalf("RequestID: want=r1 got=%q", got)
	}

	base := context.Background()
	if WithTraceData(base, nil) != base {
		t.Fatalf("nil trace data should leave ctx unchanged")
	}
	if RequestID(base) != "" || GetTraceData(nil) != nil {
		t.Fatalf("empty ctx should carry no trace data")
	}
}
