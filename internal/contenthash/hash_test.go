package contenthash

import "testing"

func TestSumDeterministic(t *testing.T) {
	t.Parallel()
	text := "Grand opening of the new gallery in the Arts District"
	first := Sum(text)
	for i := 0; i < 5; i++ {
		if got := Sum(text); got != first {
			t.Fatalf("Sum not deterministic: %q vs %q", got, first)
		}
	}
	if len(first) != 32 {
		t.Errorf("digest length = %d, want 32 hex chars", len(first))
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()
	texts := []string{
		"The  quick   brown fox",
		"  leading and trailing  ",
		"Already normalized text",
		"",
	}
	for _, text := range texts {
		once := Normalize(text)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q vs %q", text, once, twice)
		}
	}
}

func TestNormalizeDropsStopWords(t *testing.T) {
	t.Parallel()
	if got := Normalize("the show at the theater"); got != "show theater" {
		t.Errorf("Normalize = %q, want %q", got, "show theater")
	}
}

func TestSumIgnoresCaseAndPunctuation(t *testing.T) {
	t.Parallel()
	a := Sum("New Restaurant Opens!!")
	b := Sum("new restaurant opens")
	if a != b {
		t.Errorf("case/punctuation variants hash differently: %q vs %q", a, b)
	}
}

func TestSumIgnoresWhitespaceAndStopWords(t *testing.T) {
	t.Parallel()
	a := Sum("concert   in the \n park")
	b := Sum("concert park")
	if a != b {
		t.Errorf("whitespace/stop-word variants hash differently: %q vs %q", a, b)
	}
}

func TestSumDifferentTextDiffers(t *testing.T) {
	t.Parallel()
	if Sum("pop-up gallery in venice") == Sum("brewery expansion in burbank") {
		t.Errorf("unrelated texts collided")
	}
}
