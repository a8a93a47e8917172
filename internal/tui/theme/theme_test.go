package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestByName(t *testing.T) {
	assert.Equal(t, "terminal", ByName("terminal").Name)
	assert.Equal(t, "ferrari", ByName("unknown").Name)
}

func TestNext(t *testing.T) {
	assert.Equal(t, "flexoki-dark", Next("ferrari").Name)
	assert.Equal(t, "ferrari", Next("terminal").Name)
	assert.Equal(t, "ferrari", Next("missing").Name)
}

func TestSetActive(t *testing.T) {
	t.Cleanup(func() { SetActive("ferrari") })
	SetActive("flexoki-dark")
	assert.Equal(t, FlexokiDark, Active)
}
