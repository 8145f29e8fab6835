package signals

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitChunks(t *testing.T) {
	s1 := "The committee reviewed every proposal submitted this year"
	s2 := "Funding was allocated to the projects with the clearest plans"
	s3 := "Several applicants asked for detailed written feedback afterwards"
	s4 := "The next round of applications opens in early spring"
	s5 := "Results will be announced on the public website in June"

	t.Run("fewer than max keeps all long sentences", func(t *testing.T) {
		text := s1 + ". Short one. " + s2 + "!"
		assert.Equal(t, []string{s1, s2}, SplitChunks(text))
	})

	t.Run("more than max picks evenly spaced", func(t *testing.T) {
		text := s1 + ". " + s2 + "? " + s3 + ". " + s4 + ". " + s5 + "."
		assert.Equal(t, []string{s1, s2, s4}, SplitChunks(text))
	})

	t.Run("no long sentence falls back to whole text", func(t *testing.T) {
		assert.Equal(t, []string{"Hello there. Bye now."}, SplitChunks("  Hello there. Bye now.  "))
	})

	t.Run("too short", func(t *testing.T) {
		assert.Nil(t, SplitChunks("Hi. Ok."))
		assert.Nil(t, SplitChunks("   "))
	})
}
