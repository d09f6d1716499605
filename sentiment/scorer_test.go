package sentiment

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"playstore-analytics/models"
)

func TestLabelBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0.05, models.SentimentPositive},
		{0.049, models.SentimentNeutral},
		{-0.05, models.SentimentNegative},
		{-0.049, models.SentimentNeutral},
		{0, models.SentimentNeutral},
		{1, models.SentimentPositive},
		{-1, models.SentimentNegative},
	}

	for _, tt := range tests {
		assert.Equalf(t, tt.want, Label(tt.score), "Label(%v)", tt.score)
	}
}

func TestScorerFunc(t *testing.T) {
	var s Scorer = ScorerFunc(func(text string) float64 { return float64(len(text)) })
	assert.Equal(t, 3.0, s.Score("abc"))
}

func TestVaderPolarity(t *testing.T) {
	v := NewVader()

	tests := []struct {
		text string
		want string
	}{
		{"I love this app", models.SentimentPositive},
		{"Great app, works perfectly and easy to use", models.SentimentPositive},
		{"This app is terrible", models.SentimentNegative},
		{"Worst update ever, it crashes all the time", models.SentimentNegative},
		{"The app opens on Monday", models.SentimentNeutral},
		{"", models.SentimentNeutral},
	}

	for _, tt := range tests {
		got := v.Score(tt.text)
		assert.Equalf(t, tt.want, Label(got), "Score(%q) = %v", tt.text, got)
	}
}

func TestVaderNegationFlipsPolarity(t *testing.T) {
	v := NewVader()
	assert.Greater(t, v.Score("this app is good"), 0.0)
	assert.Less(t, v.Score("this app is not good"), 0.0)
}

func TestVaderBoosterAndEmphasis(t *testing.T) {
	v := NewVader()
	plain := v.Score("the app is good")
	assert.Greater(t, v.Score("the app is very good"), plain)
	assert.Greater(t, v.Score("the app is good!!"), plain)
	assert.Greater(t, v.Score("the app is GOOD"), plain)
}

func TestVaderButShift(t *testing.T) {
	v := NewVader()
	assert.Less(t, v.Score("the design is great but the app is terrible"), 0.0)
}

func TestVaderBounded(t *testing.T) {
	v := NewVader()
	long := ""
	for i := 0; i < 50; i++ {
		long += "AMAZING awesome love best "
	}
	got := v.Score(long + "!!!!!!")
	assert.LessOrEqual(t, got, 1.0)
	assert.False(t, math.IsNaN(got))
	assert.Equal(t, got, v.Score(long+"!!!!!!"), "scores are deterministic")
}

func TestSubjectivity(t *testing.T) {
	s := NewSubjectivity()

	assert.InDelta(t, 0.75, s.Score("The app is great"), 1e-9)
	assert.Equal(t, 0.0, s.Score("The app was updated on Monday"))
	assert.Equal(t, 0.0, s.Score(""))
	assert.Greater(t, s.Score("very good"), s.Score("good"))

	got := s.Score("extremely awesome, extremely perfect, extremely beautiful")
	assert.LessOrEqual(t, got, 1.0)
	assert.GreaterOrEqual(t, got, 0.0)
}
