package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestMemberInitValidate(t *testing.T) {
	tests := []struct {
		name string
		in   MemberInit
		want error
	}{
		{"ok", MemberInit{Name: NewMemberName("")}, nil},
		{"empty", MemberInit{}, ErrMemberNameEmpty},
		{"too long", MemberInit{Name: strings.Repeat("x", MaxMemberNameLen+1)}, ErrMemberNameTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.in.Validate(); !errors.Is(err, tt.want) {
				t.Fatalf("got %v want %v", err, tt.want)
			}
		})
	}
}

func TestNewMemberName(t *testing.T) {
	a, b := NewMemberName(""), NewMemberName("")
	if !strings.HasPrefix(a, DefaultMemberPrefix) || a == b {
		t.Fatalf("names %q %q", a, b)
	}
	if !strings.HasPrefix(NewMemberName("guest_"), "guest_") {
		t.Fatal("custom prefix ignored")
	}
}

func TestNewMemberNameLongPrefixStillValid(t *testing.T) {
	prefix := strings.Repeat("p", MaxMemberNameLen)
	name := NewMemberName(prefix)
	if err := (MemberInit{Name: name}).Validate(); err != nil {
		t.Fatalf("generated name %q invalid: %v", name, err)
	}
	if !strings.HasPrefix(name, prefix[:MaxMemberPrefixLen]) {
		t.Fatalf("prefix not kept: %q", name)
	}
}

func TestPublicationWireKind(t *testing.T) {
	pub := NewPublication("r1", Member{ID: "m1", Name: "member_a"}, ContentVideo, "s1")
	b, err := json.Marshal(pub)
	if err != nil {
		t.Fatal(err)
	}
	var got Publication
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatal(err)
	}
	if got.ContentType != ContentUnknown {
		t.Fatal("content type must not travel on the wire")
	}
	if got.Normalize().ContentType != ContentVideo {
		t.Fatalf("normalize from kind %q", got.Kind)
	}
}
