package inputsample

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbanos/acorn/feature"
)

var weatherFeatures = []*feature.Feature{
	feature.New("outlook", []string{"sunny", "overcast", "rainy"}),
	feature.New("windy", []string{"false", "true"}),
}

func TestValueFor(t *testing.T) {
	var out bytes.Buffer
	s := New(strings.NewReader(" Over Cast \n\n  \nTRUE\n"), weatherFeatures, NewPrompter(&out, false), "exit")

	v, err := s.ValueFor("outlook")
	require.NoError(t, err)
	assert.Equal(t, "overcast", v)
	v, err = s.ValueFor("outlook")
	require.NoError(t, err)
	assert.Equal(t, "overcast", v)

	v, err = s.ValueFor("windy")
	require.NoError(t, err)
	assert.Equal(t, "true", v)

	assert.Equal(t, map[string]string{"outlook": "overcast", "windy": "true"}, s.Values())
	assert.Equal(t, "outlook: windy: Value cannot be empty. Please enter a valid value.\nwindy: Value cannot be empty. Please enter a valid value.\nwindy: ", out.String())
}

func TestValueFor_UnseenValueIsAccepted(t *testing.T) {
	s := New(strings.NewReader("foggy\n"), weatherFeatures, NewPrompter(io.Discard, false), "exit")
	v, err := s.ValueFor("outlook")
	require.NoError(t, err)
	assert.Equal(t, "foggy", v)
}

func TestValueFor_Exit(t *testing.T) {
	s := New(strings.NewReader("  EXIT\n"), weatherFeatures, NewPrompter(io.Discard, false), "exit")
	_, err := s.ValueFor("outlook")
	assert.True(t, errors.Is(err, ErrExit))
}

func TestValueFor_EOF(t *testing.T) {
	s := New(strings.NewReader("\n"), weatherFeatures, NewPrompter(io.Discard, false), "exit")
	_, err := s.ValueFor("outlook")
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
}

func TestValueFor_UnknownFeature(t *testing.T) {
	s := New(strings.NewReader("x\n"), weatherFeatures, NewPrompter(io.Discard, false), "exit")
	_, err := s.ValueFor("humidity")
	assert.Error(t, err)
}

func TestReadAll(t *testing.T) {
	var out bytes.Buffer
	s := New(strings.NewReader("sunny\nfalse\n"), weatherFeatures, NewPrompter(&out, true), "exit")
	require.NoError(t, ReadAll(s, []string{"outlook", "windy"}))
	assert.Equal(t, map[string]string{"outlook": "sunny", "windy": "false"}, s.Values())
	assert.Equal(t, "outlook [sunny, overcast, rainy]: windy [false, true]: ", out.String())

	s = New(strings.NewReader("sunny\nexit\n"), weatherFeatures, NewPrompter(io.Discard, false), "exit")
	assert.True(t, errors.Is(ReadAll(s, []string{"outlook", "windy"}), ErrExit))
}

func TestConsole_SharedBetweenSamples(t *testing.T) {
	c := NewConsole(strings.NewReader("1\nsunny\nrainy\nexit\n"), NewPrompter(io.Discard, false), "exit")
	line, err := c.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "1", line)

	v, err := c.Sample(weatherFeatures).ValueFor("outlook")
	require.NoError(t, err)
	assert.Equal(t, "sunny", v)
	v, err = c.Sample(weatherFeatures).ValueFor("outlook")
	require.NoError(t, err)
	assert.Equal(t, "rainy", v)

	_, err = c.ReadLine()
	assert.Equal(t, ErrExit, err)
	_, err = c.ReadLine()
	assert.Equal(t, io.ErrUnexpectedEOF, err)
}
