package wifi

import (
	"errors"
	"testing"

	"agolink/internal/execrun"
)

func TestParseHardwarePorts(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   string
		found  bool
	}{
		{
			name: "wifi after ethernet",
			output: "Hardware Port: Ethernet\nDevice: en1\nEthernet Address: 00:11:22:33:44:55\n\n" +
				"Hardware Port: Wi-Fi\nDevice: en0\nEthernet Address: a4:83:e7:00:00:01\n",
			want:  "en0",
			found: true,
		},
		{
			name:   "device two lines after marker",
			output: "Hardware Port: Wi-Fi\nEthernet Address: a4:83:e7:00:00:01\nDevice: en0\n",
			want:   "en0",
			found:  true,
		},
		{
			name:   "airport marker",
			output: "Hardware Port: AirPort\r\nDevice: en1\r\n",
			want:   "en1",
			found:  true,
		},
		{
			name:   "next port resets the marker",
			output: "Hardware Port: Wi-Fi\nHardware Port: Thunderbolt Bridge\nDevice: bridge0\n",
		},
		{
			name:   "no wireless port",
			output: "Hardware Port: Ethernet\nDevice: en1\n\nHardware Port: Thunderbolt Bridge\nDevice: bridge0\n",
		},
		{
			name:   "empty output",
			output: "",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, found := parseHardwarePorts(tc.output)
			if got != tc.want || found != tc.found {
				t.Fatalf("parseHardwarePorts() = (%q, %v), want (%q, %v)", got, found, tc.want, tc.found)
			}
		})
	}
}

func TestParseCurrentNetwork(t *testing.T) {
	tests := []struct {
		name   string
		result execrun.Result
		want   string
	}{
		{"associated", execrun.Result{Stdout: "Current Wi-Fi Network: HomeNet\n"}, "HomeNet"},
		{"quoted", execrun.Result{Stdout: `Current AirPort Network: "Studio Net"`}, "Studio Net"},
		{"colons in ssid", execrun.Result{Stdout: "Current Wi-Fi Network: lab:5g"}, "lab:5g"},
		{"not associated", execrun.Result{Stdout: "You are not associated with an AirPort network.\n"}, ""},
		{"not wifi", execrun.Result{Stdout: "en5 is not a Wi-Fi interface.", ExitCode: 10}, ""},
		{"no wireless info", execrun.Result{Stdout: "** Error: Error obtaining wireless information.", ExitCode: 1}, ""},
		{"unrecognized success", execrun.Result{Stdout: "something else"}, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseCurrentNetwork(tc.result)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("parseCurrentNetwork() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParseCurrentNetworkFailure(t *testing.T) {
	_, err := parseCurrentNetwork(execrun.Result{Stdout: "odd", Stderr: "boom\n", ExitCode: 4})
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected CommandError, got %v", err)
	}
	if cmdErr.Stdout != "odd" || cmdErr.Stderr != "boom\n" {
		t.Fatalf("unexpected captured output %+v", cmdErr)
	}
	if err.Error() != "failed to read current network: odd boom" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestJoined(t *testing.T) {
	tests := []struct {
		result execrun.Result
		want   bool
	}{
		{execrun.Result{}, true},
		{execrun.Result{ExitCode: 1, Stdout: "Could not find network AGO."}, false},
		{execrun.Result{ExitCode: 1, Stderr: "Already Associated with AGO"}, true},
		{execrun.Result{ExitCode: 3, Stdout: "already connected"}, true},
	}
	for _, tc := range tests {
		if got := joined(tc.result); got != tc.want {
			t.Fatalf("joined(%+v) = %v, want %v", tc.result, got, tc.want)
		}
	}
}
