package deck

import "testing"

func TestParseCards(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Card
		wantErr  bool
	}{
		{
			name:  "hero holding",
			input: "AsKh",
			expected: []Card{
				{Rank: Ace, Suit: Spades},
				{Rank: King, Suit: Hearts},
			},
		},
		{
			name:  "full board",
			input: "AhKdQcJs9s",
			expected: []Card{
				{Rank: Ace, Suit: Hearts},
				{Rank: King, Suit: Diamonds},
				{Rank: Queen, Suit: Clubs},
				{Rank: Jack, Suit: Spades},
				{Rank: Nine, Suit: Spades},
			},
		},
		{
			name:  "space separated",
			input: "5h 4d 3c",
			expected: []Card{
				{Rank: Five, Suit: Hearts},
				{Rank: Four, Suit: Diamonds},
				{Rank: Three, Suit: Clubs},
			},
		},
		{
			name:  "case insensitive",
			input: "asKHqDjc",
			expected: []Card{
				{Rank: Ace, Suit: Spades},
				{Rank: King, Suit: Hearts},
				{Rank: Queen, Suit: Diamonds},
				{Rank: Jack, Suit: Clubs},
			},
		},
		{
			name:    "invalid rank",
			input:   "XsKs",
			wantErr: true,
		},
		{
			name:    "invalid suit",
			input:   "Ax",
			wantErr: true,
		},
		{
			name:    "truncated",
			input:   "AsK",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards, err := ParseCards(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(cards) != len(tt.expected) {
				t.Fatalf("expected %d cards, got %d", len(tt.expected), len(cards))
			}
			for i, card := range cards {
				if card != tt.expected[i] {
					t.Errorf("card %d: expected %v, got %v", i, tt.expected[i], card)
				}
			}
		})
	}
}

func TestIsValidCard(t *testing.T) {
	valid := []string{"As", "Kh", "Qd", "Jc", "Ts", "9h", "2c", "as", "kH"}
	for _, s := range valid {
		if !IsValidCard(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}

	invalid := []string{"", "A", "AsK", "1s", "Ax", "10s", "s A", "ZZ"}
	for _, s := range invalid {
		if IsValidCard(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestCardString(t *testing.T) {
	tests := []struct {
		card Card
		want string
	}{
		{NewCard(Ace, Spades), "As"},
		{NewCard(Two, Clubs), "2c"},
		{NewCard(Ten, Diamonds), "Td"},
		{NewCard(Queen, Hearts), "Qh"},
	}
	for _, tt := range tests {
		if got := tt.card.String(); got != tt.want {
			t.Errorf("expected %s, got %s", tt.want, got)
		}
	}
}

func TestParseCardRoundTrip(t *testing.T) {
	for rank := Two; rank <= Ace; rank++ {
		for suit := Spades; suit <= Clubs; suit++ {
			card := NewCard(rank, suit)
			parsed, err := ParseCard(card.String())
			if err != nil {
				t.Fatalf("round trip failed for %v: %v", card, err)
			}
			if parsed != card {
				t.Errorf("expected %v, got %v", card, parsed)
			}
		}
	}
}
