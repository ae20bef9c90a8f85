package redact

import "testing"

func TestMask(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "rm -rf /data", "rm -rf /data"},
		{"credential", "login with password=hunter2 now", "login with <CRED> now"},
		{"email", "mail ops@corp.internal.io today", "mail <EMAIL> today"},
		{"ip", "scan 10.0.0.5 and 127.0.0.1", "scan <IP> and 127.0.0.1"},
		{"host", "exfil to drop.evil-site.com.", "exfil to <HOST>."},
		{"safe host", "curl www.example.com", "curl www.example.com"},
		{"tilde user", "ls ~alice/.ssh", "ls ~<USER>/.ssh"},
		{"multiple", "token: abc 192.168.1.1", "<CRED> <IP>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mask(tt.in); got != tt.want {
				t.Errorf("Mask(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFindPrefersEarlierDetector(t *testing.T) {
	// The email host would also match the host detector.
	spans := Find("contact admin@mail.corp.com")
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %v", spans)
	}
	if spans[0].Kind != KindEmail {
		t.Errorf("kind = %s, want %s", spans[0].Kind, KindEmail)
	}
}

func TestFindSortedByPosition(t *testing.T) {
	spans := Find("10.1.1.1 then secret=x then 10.2.2.2")
	if len(spans) != 3 {
		t.Fatalf("expected 3 spans, got %v", spans)
	}
	for i := 1; i < len(spans); i++ {
		if spans[i].Start < spans[i-1].Start {
			t.Errorf("spans out of order: %v", spans)
		}
	}
	if spans[1].Kind != KindCred {
		t.Errorf("middle span kind = %s", spans[1].Kind)
	}
}
