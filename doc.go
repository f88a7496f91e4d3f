// Package engine is the query, matching, and investigation-tracking engine
// behind a security-analyst hunting workbench.
//
// Analysts build small filter queries against one of three record
// collections (threats, user activity, devices), execute them to get a
// ranked set of matching entities, and optionally accumulate findings
// across multiple queries into a persistent, named investigation session
// that can later be exported.
//
// The engine is a library: it owns no network ports, CLI, or on-disk
// schema, and is consumed by a presentation layer. It is organized as a
// facade over focused packages:
//
//   - record: source types, the generic record model, and the static
//     field registry
//   - query: clause semantics and the deterministic local filter executor
//   - match: canonical match/correlation results and the normalizer that
//     merges backend and local results
//   - analysis: the contract with the external analysis backend
//   - investigation: named sessions, entity selection, query history, and
//     snapshot export
//   - config: workbench.yaml configuration
//
// # Quick start
//
//	wb, err := engine.NewWorkbench(
//	    engine.WithAnalysisClient(backend),
//	    engine.WithAnalysisTimeout(30*time.Second),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	q := &query.Query{
//	    SourceType: record.SourceTypeThreat,
//	    Clauses: []query.Clause{
//	        {Field: "severity", Operator: query.OperatorEquals, Value: "critical"},
//	    },
//	}
//	result, err := wb.Hunt(ctx, engine.HuntRequest{
//	    Query:    q,
//	    FreeText: "ransomware staging on finance hosts",
//	    Sources:  sources,
//	})
//
// The analysis backend is optional enrichment: when it is slow, fails, or
// is not configured, Hunt returns local filter results with the degraded
// flag set instead of failing.
package engine
