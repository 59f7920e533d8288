package tile

import "testing"

func TestDistributionNew(t *testing.T) {
	tl, err := English.New(1, 'a')
	if err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	if want := Letter("A"); tl.Ch != want {
		t.Errorf("letter: wanted %v, got %v", want, tl.Ch)
	}
	if want := 1; tl.Points != want {
		t.Errorf("points: wanted %v, got %v", want, tl.Points)
	}
}

func TestDistributionNewUnknownLetter(t *testing.T) {
	if _, err := Polish.New(1, 'x'); err == nil {
		t.Error("wanted error for letter not in distribution")
	}
}

func TestNewBlankAssign(t *testing.T) {
	bl := NewBlank(9)
	if bl.Points != 0 {
		t.Errorf("blank tile should have 0 points, got %v", bl.Points)
	}
	assigned, err := bl.Assign('z')
	if err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	if want := Letter("Z"); assigned.Ch != want {
		t.Errorf("wanted %v, got %v", want, assigned.Ch)
	}
	if assigned.Points != 0 {
		t.Errorf("an assigned blank must stay worth 0 points, got %v", assigned.Points)
	}
}

func TestAssignNonBlankNoop(t *testing.T) {
	tl, _ := English.New(1, 'q')
	same, err := tl.Assign('z')
	if err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	if same.Ch != tl.Ch {
		t.Errorf("assigning a non-blank tile should not change its letter: wanted %v, got %v", tl.Ch, same.Ch)
	}
}

func TestLetterUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		want    Letter
		wantErr bool
	}{
		{"simple", `"a"`, "A", false},
		{"blank", `"_"`, Blank, false},
		{"empty", `""`, "", true},
		{"multiple chars", `"ab"`, "", true},
		{"digit", `"1"`, "", true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var l Letter
			err := l.UnmarshalJSON([]byte(test.json))
			switch {
			case test.wantErr:
				if err == nil {
					t.Error("wanted error")
				}
			case err != nil:
				t.Errorf("unwanted error: %v", err)
			case l != test.want:
				t.Errorf("wanted %v, got %v", test.want, l)
			}
		})
	}
}
