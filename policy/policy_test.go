package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicy_Grants(t *testing.T) {
	var testCases = []struct {
		description string
		policy      *Policy
		expect      map[string]bool
	}{
		{
			description: "nil policy grants everything",
			expect:      map[string]bool{Console: true, FSRead: true, FSWrite: true},
		},
		{
			description: "deny binds nothing",
			policy:      &Policy{Mode: ModeDeny},
			expect:      map[string]bool{Console: false, FSRead: false, FSWrite: false},
		},
		{
			description: "block list wins",
			policy:      &Policy{Mode: ModeAuto, AllowList: []string{FSRead, FSWrite}, BlockList: []string{"FS.WRITE"}},
			expect:      map[string]bool{Console: false, FSRead: true, FSWrite: false},
		},
	}
	for _, testCase := range testCases {
		for capability, expect := range testCase.expect {
			assert.Equal(t, expect, testCase.policy.Grants(capability), testCase.description+" "+capability)
		}
	}
}

func TestPolicy_Approve(t *testing.T) {
	var asked []string
	p := &Policy{Mode: ModeAsk, Ask: func(ctx context.Context, capability, function string, args []interface{}, p *Policy) bool {
		asked = append(asked, function)
		p.Mode = ModeAuto
		return true
	}}
	ctx := context.Background()
	assert.True(t, p.Approve(ctx, FSWrite, "writeFileSync", nil))
	assert.True(t, p.Approve(ctx, FSWrite, "unlinkSync", nil))
	assert.Equal(t, []string{"writeFileSync"}, asked)
	assert.False(t, (&Policy{Mode: ModeAsk}).Approve(ctx, FSRead, "readFileSync", nil))
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, (&Config{Mode: ModeAsk}).Validate())
	assert.EqualError(t, (&Config{Mode: "sometimes"}).Validate(), "unsupported policy mode: sometimes")
	assert.Equal(t, &Config{Mode: ModeDeny, BlockList: []string{FSWrite}}, ToConfig(FromConfig(&Config{Mode: ModeDeny, BlockList: []string{FSWrite}})))
}
