package agents

import (
	"context"
	"testing"

	"github.com/firebase/genkit/go/genkit"
	"github.com/stretchr/testify/assert"

	"github.com/asmaiqbal85/ai-weather-agent/tools"
)

func TestNewWeatherAssistant(t *testing.T) {
	gk := genkit.Init(context.Background())
	reg := tools.NewRegistry()

	assistant := NewWeatherAssistant(gk, reg, nil)
	assert.NotNil(t, assistant)
}

func TestHistoryMessages(t *testing.T) {
	msgs := historyMessages([]Turn{
		{Role: RoleUser, Content: "Find the weather in Islamabad"},
		{Role: RoleModel, Content: "It is Clear in Islamabad with a temperature of 29 and humidity of 40%."},
		{Role: "other", Content: "treated as user"},
	})

	assert.Len(t, msgs, 3)
	assert.Equal(t, "Find the weather in Islamabad", msgs[0].Text())
	assert.Equal(t, "It is Clear in Islamabad with a temperature of 29 and humidity of 40%.", msgs[1].Text())
	assert.Equal(t, "treated as user", msgs[2].Text())
}

func TestHistoryMessages_Empty(t *testing.T) {
	assert.Empty(t, historyMessages(nil))
}
