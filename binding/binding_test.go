package binding

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Neumenon/aon/aon"
)

func TestJSONToAON(t *testing.T) {
	got, err := JSONToAON(`{"a":1,"b":"7000"}`, "r")
	require.NoError(t, err)
	assert.Equal(t, "!aon\ncount:1\nschemas:{\n  r:(a:number,b:string)\n}\ndata:\n1,7000\nend\n", got)
}

func TestJSONToAON_Errors(t *testing.T) {
	tests := []struct {
		name string
		json string
		root string
		want error
	}{
		{"no root", `{"a":1}`, "", ErrNoRoot},
		{"bad json", `{"a":`, "r", aon.ErrInput},
		{"empty list", `[]`, "r", aon.ErrEmptyInput},
		{"scalar", `42`, "r", aon.ErrInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := JSONToAON(tt.json, tt.root)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, IsInputError(err))
		})
	}
}

func TestAONToJSON(t *testing.T) {
	got, err := AONToJSON("!aon\ncount:1\nschemas:{\n  r:(z:number,a:string)\n}\ndata:\n1,7000\nend\n")
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":"7000"}`, got)

	_, err = AONToJSON("no header here")
	assert.ErrorIs(t, err, aon.ErrRootSchema)
	assert.False(t, IsInputError(err))
}

func TestSession_LastError(t *testing.T) {
	s := NewSession()

	_, ok := s.LastError()
	assert.False(t, ok)

	res := s.JSONToAON(`[]`, "r")
	assert.False(t, res.OK())
	assert.Empty(t, res.Text)
	msg, ok := s.LastError()
	require.True(t, ok)
	assert.Equal(t, aon.ErrEmptyInput.Error(), msg)
	assert.ErrorIs(t, s.Err(), aon.ErrEmptyInput)

	// A successful call clears the slot.
	res = s.AONToJSON("!aon\nschemas:{\n  r:(a:number)\n}\ndata:\n1\nend\n")
	require.True(t, res.OK())
	assert.Equal(t, `{"a":1}`, res.Text)
	_, ok = s.LastError()
	assert.False(t, ok)
}

func TestSession_Options(t *testing.T) {
	doc := `{"home":{"addr":{"city":"x"}},"work":{"addr":{"zip":"1"}}}`

	res := NewSession(aon.WithQualifiedCollisions()).JSONToAON(doc, "r")
	require.True(t, res.OK())
	assert.Contains(t, res.Text, "home.addr:(city:string)")

	res = NewSession().JSONToAON(doc, "r")
	require.True(t, res.OK())
	assert.NotContains(t, res.Text, "home.addr")
}

func TestSession_Isolated(t *testing.T) {
	good, bad := NewSession(), NewSession()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			res := good.JSONToAON(fmt.Sprintf(`{"n":%d}`, i), "r")
			assert.True(t, res.OK())
		}(i)
		go func() {
			defer wg.Done()
			res := bad.AONToJSON("")
			assert.False(t, res.OK())
		}()
	}
	wg.Wait()

	_, ok := good.LastError()
	assert.False(t, ok)
	_, ok = bad.LastError()
	assert.True(t, ok)
}
