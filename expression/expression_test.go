package expression

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	type args struct {
		s string
	}
	tests := []struct {
		name string
		args args
		want Reference
	}{
		{
			name: "input reference",
			args: args{s: "$inputs.username"},
			want: Reference{Kind: KindInput, Field: "username", Raw: "$inputs.username"},
		},
		{
			name: "input reference with dotted path",
			args: args{s: "$inputs.user.address.city"},
			want: Reference{Kind: KindInput, Field: "user.address.city", Raw: "$inputs.user.address.city"},
		},
		{
			name: "step output reference",
			args: args{s: "$steps.login.outputs.token"},
			want: Reference{Kind: KindStepOutput, StepID: "login", Field: "token", Raw: "$steps.login.outputs.token"},
		},
		{
			name: "step output reference with dotted path",
			args: args{s: "$steps.create-user.outputs.user.id"},
			want: Reference{Kind: KindStepOutput, StepID: "create-user", Field: "user.id", Raw: "$steps.create-user.outputs.user.id"},
		},
		{
			name: "response body reference",
			args: args{s: "$response.body.id"},
			want: Reference{Kind: KindResponseBody, Field: "id", Raw: "$response.body.id"},
		},
		{
			name: "response header reference",
			args: args{s: "$response.header.Content-Type"},
			want: Reference{Kind: KindResponseHeader, Name: "Content-Type", Raw: "$response.header.Content-Type"},
		},
		{
			name: "status code reference",
			args: args{s: "$statusCode"},
			want: Reference{Kind: KindStatusCode, Raw: "$statusCode"},
		},
		{
			name: "plain text is a literal",
			args: args{s: "plain text"},
			want: Reference{Kind: KindLiteral, Raw: "plain text"},
		},
		{
			name: "empty string is a literal",
			args: args{s: ""},
			want: Reference{Kind: KindLiteral, Raw: ""},
		},
		{
			name: "unknown root degrades to unrecognized",
			args: args{s: "$url"},
			want: Reference{Kind: KindUnrecognized, Raw: "$url"},
		},
		{
			name: "step reference without outputs segment is unrecognized",
			args: args{s: "$steps.login.token"},
			want: Reference{Kind: KindUnrecognized, Raw: "$steps.login.token"},
		},
		{
			name: "step output reference without field is unrecognized",
			args: args{s: "$steps.login.outputs"},
			want: Reference{Kind: KindUnrecognized, Raw: "$steps.login.outputs"},
		},
		{
			name: "input reference with empty path is unrecognized",
			args: args{s: "$inputs."},
			want: Reference{Kind: KindUnrecognized, Raw: "$inputs."},
		},
		{
			name: "case sensitive",
			args: args{s: "$Inputs.username"},
			want: Reference{Kind: KindUnrecognized, Raw: "$Inputs.username"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.args.s))
		})
	}
}

func TestExpression_IsExpression(t *testing.T) {
	assert.True(t, Expression("$inputs.a").IsExpression())
	assert.True(t, Expression("$whatever").IsExpression())
	assert.False(t, Expression("literal").IsExpression())
	assert.False(t, Expression("").IsExpression())
}

func TestClassify_Deterministic(t *testing.T) {
	for range 3 {
		assert.Equal(t, Classify("$steps.a.outputs.b"), Classify("$steps.a.outputs.b"))
	}
}
