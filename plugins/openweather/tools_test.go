package openweather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeatherTool_Report(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(islamabadBody))
	}))
	defer ts.Close()

	tool := NewWeatherTool(testClient(ts.URL), nil, nil)
	report := tool.Report(context.Background(), "Islamabad")
	assert.Equal(t, "It is Clear in Islamabad with a temperature of 29 and humidity of 40%.", report)
}

func TestWeatherTool_Report_NeverErrors(t *testing.T) {
	// One case per failure kind; the tool must hand back a sentence, never
	// let a lookup error escape to the agent runtime.
	cases := []struct {
		name    string
		handler http.HandlerFunc
		close   bool
		city    string
		want    string
	}{
		{
			name: "NotFound",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(`{"cod": "404", "message": "city not found"}`))
			},
			city: "Zzyxville",
			want: "I could not find weather data for Zzyxville.",
		},
		{
			name: "ProviderUnavailable",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			city: "Islamabad",
			want: "The weather service is unavailable right now. Please try again in a moment.",
		},
		{
			name:    "NetworkError",
			handler: func(w http.ResponseWriter, r *http.Request) {},
			close:   true,
			city:    "Islamabad",
			want:    "I could not reach the weather service. Please try again later.",
		},
		{
			name: "InvalidResponse",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`not json`))
			},
			city: "Islamabad",
			want: "I got an unexpected answer from the weather service for Islamabad.",
		},
		{
			name:    "EmptyCity",
			handler: func(w http.ResponseWriter, r *http.Request) {},
			city:    "  ",
			want:    "I need a city name to look up the weather.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts := httptest.NewServer(tc.handler)
			if tc.close {
				ts.Close()
			} else {
				defer ts.Close()
			}

			tool := NewWeatherTool(testClient(ts.URL), nil, nil)
			report := tool.Report(context.Background(), tc.city)
			assert.Equal(t, tc.want, report)
		})
	}
}

func TestWeatherTool_Execute_ReturnsString(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(islamabadBody))
	}))
	defer ts.Close()

	tool := NewWeatherTool(testClient(ts.URL), nil, nil)

	for _, args := range []map[string]interface{}{
		{"city": "Islamabad"},
		{"city": ""},
		{},
		{"city": 42},
	} {
		out, err := tool.Execute(context.Background(), args)
		assert.NoError(t, err)
		assert.IsType(t, "", out)
		assert.NotEmpty(t, out)
	}
}

func TestFormatObservation(t *testing.T) {
	obs := &Observation{City: "Karachi", Temperature: 28.5, Description: "haze", Humidity: 62}
	assert.Equal(t, "It is haze in Karachi with a temperature of 28.5 and humidity of 62%.", FormatObservation(obs))
}
