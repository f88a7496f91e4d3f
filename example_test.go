package engine_test

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/huntworks/engine"
	"github.com/huntworks/engine/query"
	"github.com/huntworks/engine/record"
)

// Example demonstrates a local filter hunt followed by an investigation
// export.
func Example() {
	wb, err := engine.NewWorkbench(engine.WithLogger(slog.New(slog.DiscardHandler)))
	if err != nil {
		log.Fatal(err)
	}

	sources := map[record.SourceType][]record.Record{
		record.SourceTypeThreat: {
			{"id": "t1", "name": "Emotet", "severity": "High"},
			{"id": "t2", "name": "LockBit", "severity": "Critical"},
			{"id": "t3", "name": "SolarFlare C2", "severity": "Critical"},
		},
	}

	ctx := context.Background()
	result, err := wb.Hunt(ctx, engine.HuntRequest{
		Query: &query.Query{
			SourceType: record.SourceTypeThreat,
			Clauses: []query.Clause{
				{Field: "severity", Operator: query.OperatorEquals, Value: "critical"},
			},
		},
		Sources: sources,
	})
	if err != nil {
		log.Fatal(err)
	}

	inv, err := wb.Investigations().Create(ctx, "APT Campaign Review", "")
	if err != nil {
		log.Fatal(err)
	}
	if err := wb.Investigations().RecordQuery(ctx, inv.ID, result.QueryText, len(result.Results.Matches)); err != nil {
		log.Fatal(err)
	}

	snap, err := wb.Investigations().ExportSnapshot(ctx, inv.ID, result.QueryText, result.Results)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("matches:", len(result.Results.Matches))
	fmt.Println("degraded:", result.Results.Degraded)
	fmt.Println("exported:", snap.Investigation)
	// Output:
	// matches: 2
	// degraded: false
	// exported: APT Campaign Review
}
