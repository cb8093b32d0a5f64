package openapi

import (
	"testing"

	"github.com/flowlint/flowlint/pointer"
	"github.com/flowlint/flowlint/sequencedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocument() *Document {
	return &Document{
		OpenAPI: "3.0.3",
		Info:    Info{Title: "User API", Version: "1.0.0"},
		Paths: sequencedmap.New(
			sequencedmap.NewElem("/login", &PathItem{
				Post: &Operation{
					OperationID: "loginUser",
					Parameters: []*Parameter{
						{Name: "username", In: "query", Required: true},
					},
				},
			}),
			sequencedmap.NewElem("/users/{id}", &PathItem{
				Get: &Operation{
					OperationID: "getUser",
					Summary:     pointer.From("Fetch a user"),
				},
				Delete: &Operation{
					OperationID: "deleteUser",
				},
			}),
		),
	}
}

func TestResolver_FindOperationByID(t *testing.T) {
	r := NewResolver()
	r.AddDocument("userAPI", testDocument())

	ref, op, ok := r.FindOperationByID("deleteUser")
	require.True(t, ok)
	assert.Equal(t, "userAPI", ref.SourceName)
	assert.Equal(t, "DELETE", ref.Method)
	assert.Equal(t, "/users/{id}", ref.Path)
	assert.Equal(t, "deleteUser", op.OperationID)

	_, _, ok = r.FindOperationByID("missingOperation")
	assert.False(t, ok)

	_, _, ok = r.FindOperationByID("")
	assert.False(t, ok)
}

func TestResolver_FindOperationByID_AcrossDocuments(t *testing.T) {
	r := NewResolver()
	r.AddDocument("userAPI", testDocument())
	r.AddDocument("orderAPI", &Document{
		Paths: sequencedmap.New(
			sequencedmap.NewElem("/orders", &PathItem{
				Post: &Operation{OperationID: "createOrder"},
			}),
		),
	})

	ref, _, ok := r.FindOperationByID("createOrder")
	require.True(t, ok)
	assert.Equal(t, "orderAPI", ref.SourceName)
	assert.Equal(t, []string{"userAPI", "orderAPI"}, r.SourceNames())
}

func TestResolver_FindOperationByPathRef(t *testing.T) {
	r := NewResolver()
	r.AddDocument("userAPI", testDocument())

	ref, op, ok := r.FindOperationByPathRef("GET /users/{id}")
	require.True(t, ok)
	assert.Equal(t, "GET", ref.Method)
	assert.Equal(t, "getUser", op.OperationID)

	// method is case-insensitive on input
	ref, _, ok = r.FindOperationByPathRef("post /login")
	require.True(t, ok)
	assert.Equal(t, "POST", ref.Method)

	_, _, ok = r.FindOperationByPathRef("PUT /users/{id}")
	assert.False(t, ok)

	_, _, ok = r.FindOperationByPathRef("GET /missing")
	assert.False(t, ok)

	_, _, ok = r.FindOperationByPathRef("no-space")
	assert.False(t, ok)
}

func TestPathItem_GetOperation(t *testing.T) {
	item := testDocument().Paths.GetOrZero("/users/{id}")

	assert.NotNil(t, item.GetOperation("get"))
	assert.NotNil(t, item.GetOperation("DELETE"))
	assert.Nil(t, item.GetOperation("POST"))
	assert.Nil(t, item.GetOperation("bogus"))
}
