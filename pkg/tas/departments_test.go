package tas

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestFlattenDepartments(t *testing.T) {
	tests := []struct {
		name  string
		nodes []deptNode
		want  []Department
	}{
		{name: "empty", nodes: nil, want: []Department{}},
		{
			name: "pre-order",
			nodes: []deptNode{
				{ID: 10, Name: "Engineering", Children: []deptNode{
					{ID: 11, Name: "Aerospace"},
					{ID: 12, Name: "Civil", Children: []deptNode{{ID: 13, Name: "Structures"}}},
				}},
				{ID: 20, Name: "Sciences"},
			},
			want: []Department{
				{ID: 10, Name: "Engineering"},
				{ID: 11, Name: "Aerospace"},
				{ID: 12, Name: "Civil"},
				{ID: 13, Name: "Structures"},
				{ID: 20, Name: "Sciences"},
			},
		},
		{
			name: "child repeating an ancestor is dropped with its subtree",
			nodes: []deptNode{
				{ID: 1, Name: "a", Children: []deptNode{
					{ID: 2, Name: "b", Children: []deptNode{
						{ID: 1, Name: "a again", Children: []deptNode{{ID: 3, Name: "under cycle"}}},
					}},
				}},
			},
			want: []Department{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}},
		},
		{
			name:  "siblings may share an id",
			nodes: []deptNode{{ID: 5, Name: "x"}, {ID: 5, Name: "y"}},
			want:  []Department{{ID: 5, Name: "x"}, {ID: 5, Name: "y"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, cmp.Diff(tt.want, flattenDepartments(tt.nodes)))
		})
	}
}

func TestFlattenDepartments_DepthBound(t *testing.T) {
	var root deptNode
	cur := &root
	for i := int64(1); i <= 100; i++ {
		cur.ID = i
		cur.Children = []deptNode{{}}
		cur = &cur.Children[0]
	}
	got := flattenDepartments([]deptNode{root})
	assert.Len(t, got, maxDepartmentDepth)
}

func TestGetInstitution(t *testing.T) {
	body := `{"status":"success","result":{
		"id": 1, "name": "University of Texas at Austin", "active": true,
		"departments": [
			{"id": 2, "name": "Engineering", "active": true, "children": [
				{"id": 3, "name": "Aerospace", "active": false}
			]},
			{"id": 4, "name": "Natural Sciences", "active": true}
		]}}`
	c, spy := newSpyClient(t, 200, body)

	inst, err := c.GetInstitution(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "https://tas.example.org/api/v1/institutions/1", spy.Last(t).URL)

	want := &Institution{
		ID:     1,
		Name:   "University of Texas at Austin",
		Active: boolPtr(true),
		Children: []Department{
			{ID: 2, Name: "Engineering", Active: boolPtr(true)},
			{ID: 3, Name: "Aerospace", Active: boolPtr(false)},
			{ID: 4, Name: "Natural Sciences", Active: boolPtr(true)},
		},
	}
	assert.Empty(t, cmp.Diff(want, inst))
}

func TestGetInstitution_Errors(t *testing.T) {
	c, spy := newSpyClient(t, 200, okNull)
	_, err := c.GetInstitution(context.Background(), 0)
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Empty(t, spy.Calls())

	_, err = c.GetInstitution(context.Background(), 7)
	require.ErrorIs(t, err, ErrProtocol)

	c, _ = newSpyClient(t, 200, `{"status":"success","result":{"id":"seven"}}`)
	_, err = c.GetInstitution(context.Background(), 7)
	require.ErrorIs(t, err, ErrProtocol)
}

func TestGetDepartment(t *testing.T) {
	c, spy := newSpyClient(t, 200, `{"status":"success","result":{"id":12,"name":"Civil","departments":[]}}`)

	dept, err := c.GetDepartment(context.Background(), 1, 12)
	require.NoError(t, err)
	assert.Equal(t, int64(12), dept.ID)
	assert.Equal(t, "https://tas.example.org/api/v1/institutions/12", spy.Last(t).URL)
	assert.Empty(t, dept.Children)

	_, err = c.GetDepartment(context.Background(), 0, 12)
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Len(t, spy.Calls(), 1)
}

func TestGetDepartments(t *testing.T) {
	c, spy := newSpyClient(t, 200, `{"status":"success","result":[
		{"id":2,"name":"Engineering","children":[{"id":3,"name":"Aerospace"}]},
		{"id":4,"name":"Natural Sciences"}]}`)

	depts, err := c.GetDepartments(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "https://tas.example.org/api/v1/institutions/1/departments", spy.Last(t).URL)

	ids := make([]int64, 0, len(depts))
	for _, d := range depts {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []int64{2, 3, 4}, ids)
}

func TestGetDepartments_NullResult(t *testing.T) {
	c, _ := newSpyClient(t, 200, okNull)
	depts, err := c.GetDepartments(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, depts)
	assert.Empty(t, depts)
}

func TestInstitutionsAndFields(t *testing.T) {
	c, spy := newSpyClient(t, 200, `{"status":"success","result":[{"id":1,"name":"UT Austin"},{"id":2,"name":"Rice"}]}`)

	insts, err := c.Institutions(context.Background())
	require.NoError(t, err)
	require.Len(t, insts, 2)
	assert.Equal(t, "Rice", insts[1]["name"])
	assert.Equal(t, "https://tas.example.org/api/v1/institutions/", spy.Last(t).URL)

	_, err = c.Fields(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://tas.example.org/api/tup/projects/fields", spy.Last(t).URL)
}
