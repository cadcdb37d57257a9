package memov1

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateNoteRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     *UpdateNoteRequest
		wantErr string
	}{
		{name: "valid", req: &UpdateNoteRequest{Id: "1", Title: "", Content: ""}},
		{name: "empty id", req: &UpdateNoteRequest{Id: "  "}, wantErr: "id cannot be empty"},
		{name: "long title", req: &UpdateNoteRequest{Id: "1", Title: strings.Repeat("a", MaxTitleLength+1)}, wantErr: "title is too long"},
		{name: "long content", req: &UpdateNoteRequest{Id: "1", Content: strings.Repeat("a", MaxContentLength+1)}, wantErr: "content is too long"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestIDRequests_Validate(t *testing.T) {
	assert.Error(t, (&GetNoteRequest{}).Validate())
	assert.NoError(t, (&GetNoteRequest{Id: "x"}).Validate())
	assert.Error(t, (&DeleteNoteRequest{}).Validate())
	assert.NoError(t, (&DeleteNoteRequest{Id: "x"}).Validate())
}

func TestCodec_NoteShape(t *testing.T) {
	data, err := Codec{}.Marshal(&Note{Id: "1", Title: "t", CreatedAt: 5, UpdatedAt: 6})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1","title":"t","content":"","createdAt":5,"updatedAt":6}`, string(data))

	var n Note
	require.NoError(t, Codec{}.Unmarshal(data, &n))
	assert.Equal(t, int64(6), n.UpdatedAt)
	assert.Equal(t, "json", Codec{}.Name())
}
