package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huntworks/engine/record"
)

func threatFixtures() []record.Record {
	return []record.Record{
		{"id": "t1", "name": "Emotet", "severity": "High", "risk_score": 71},
		{"id": "t2", "name": "LockBit", "severity": "Critical", "risk_score": 95},
		{"id": "t3", "name": "Phishing Kit", "severity": "Medium", "risk_score": 44},
		{"id": "t4", "name": "SolarFlare C2", "severity": "Critical", "risk_score": 91},
		{"id": "t5", "name": "Adware Bundle", "severity": "Low", "risk_score": "N/A"},
	}
}

func TestExecute_EmptyClauseList(t *testing.T) {
	records := threatFixtures()
	q := Query{SourceType: record.SourceTypeThreat}

	got, err := Execute(q, records)
	require.NoError(t, err)
	require.Len(t, got, len(records))
	for i := range records {
		assert.Equal(t, records[i]["id"], got[i]["id"], "order must be preserved")
	}
}

func TestExecute_CaseInsensitiveEquals(t *testing.T) {
	q := Query{
		SourceType: record.SourceTypeThreat,
		Clauses: []Clause{
			{Field: "severity", Operator: OperatorEquals, Value: "critical"},
		},
	}

	got, err := Execute(q, threatFixtures())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "t2", got[0]["id"])
	assert.Equal(t, "t4", got[1]["id"])
}

func TestExecute_ConjunctionOfClauses(t *testing.T) {
	q := Query{
		SourceType: record.SourceTypeThreat,
		Clauses: []Clause{
			{Field: "severity", Operator: OperatorEquals, Value: "critical"},
			{Field: "risk_score", Operator: OperatorGreaterThan, Value: "92"},
		},
	}

	got, err := Execute(q, threatFixtures())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "t2", got[0]["id"])
}

func TestExecute_NonNumericFieldDegrades(t *testing.T) {
	q := Query{
		SourceType: record.SourceTypeThreat,
		Clauses: []Clause{
			{Field: "risk_score", Operator: OperatorGreaterThan, Value: "10"},
		},
	}

	// t5 has risk_score "N/A": the clause degrades to no-match for that
	// record, it never errors.
	got, err := Execute(q, threatFixtures())
	require.NoError(t, err)
	require.Len(t, got, 4)
	for _, rec := range got {
		assert.NotEqual(t, "t5", rec["id"])
	}
}

func TestExecute_PassThroughClausesKeepEverything(t *testing.T) {
	q := Query{
		SourceType: record.SourceTypeThreat,
		Clauses: []Clause{
			{Field: "", Operator: OperatorEquals, Value: "critical"},
			{Field: "severity", Operator: OperatorEquals, Value: ""},
		},
	}

	got, err := Execute(q, threatFixtures())
	require.NoError(t, err)
	assert.Len(t, got, len(threatFixtures()))
}

func TestExecute_UnsupportedOperatorFailsFast(t *testing.T) {
	q := Query{
		SourceType: record.SourceTypeThreat,
		Clauses: []Clause{
			{Field: "severity", Operator: OperatorEquals, Value: "critical"},
			{Field: "name", Operator: Operator("regex"), Value: ".*"},
		},
	}

	got, err := Execute(q, threatFixtures())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedOperator)
	assert.Nil(t, got, "fail-fast must not return partial results")
}

func TestExecute_UnknownSourceType(t *testing.T) {
	q := Query{SourceType: record.SourceType("mailbox")}

	_, err := Execute(q, threatFixtures())
	require.Error(t, err)
	assert.ErrorIs(t, err, record.ErrUnknownSourceType)
}

func TestExecute_Deterministic(t *testing.T) {
	records := threatFixtures()
	q := Query{
		SourceType: record.SourceTypeThreat,
		Clauses: []Clause{
			{Field: "severity", Operator: OperatorEquals, Value: "critical"},
		},
	}

	first, err := Execute(q, records)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Execute(q, records)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestQuery_String(t *testing.T) {
	tests := []struct {
		name string
		q    Query
		want string
	}{
		{
			"no clauses",
			Query{SourceType: record.SourceTypeThreat},
			"threat: all records",
		},
		{
			"single clause",
			Query{
				SourceType: record.SourceTypeDevice,
				Clauses:    []Clause{{Field: "os", Operator: OperatorContains, Value: "windows"}},
			},
			"device: os contains windows",
		},
		{
			"pass-through clauses elided",
			Query{
				SourceType: record.SourceTypeUserActivity,
				Clauses: []Clause{
					{Field: "", Operator: OperatorEquals, Value: "x"},
					{Field: "action", Operator: OperatorEquals, Value: "login"},
				},
			},
			"user_activity: action equals login",
		},
		{
			"multiple clauses joined with AND",
			Query{
				SourceType: record.SourceTypeThreat,
				Clauses: []Clause{
					{Field: "severity", Operator: OperatorEquals, Value: "critical"},
					{Field: "risk_score", Operator: OperatorGreaterThan, Value: "80"},
				},
			},
			"threat: severity equals critical AND risk_score greater_than 80",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.q.String())
		})
	}
}
