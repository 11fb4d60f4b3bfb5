package main

import (
	"reflect"
	"testing"

	"github.com/ardanlabs/trampolinegen/logfilter"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		env     map[string]string
		want    config
		wantErr bool
	}{
		{
			name: "defaults",
			args: []string{"a.log", "b.log"},
			want: config{marker: logfilter.DefaultMarker, logLevel: "info", paths: []string{"a.log", "b.log"}},
		},
		{
			name: "marker and env level",
			args: []string{"-marker", "WARN", "a.log"},
			env:  map[string]string{"LOG_LEVEL": "debug"},
			want: config{marker: "WARN", logLevel: "debug", paths: []string{"a.log"}},
		},
		{name: "no files", args: nil, wantErr: true},
		{name: "empty marker", args: []string{"-marker=", "a.log"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			getenv := func(k string) string { return tt.env[k] }

			got, err := parseArgs(tt.args, getenv)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseArgs() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
