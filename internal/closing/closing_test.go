package closing

import "testing"

func TestClosingPhraseEndsRegardlessOfLength(t *testing.T) {
    d := New(nil, 0)
    if !d.ShouldEnd(2, "Thank you for taking the time to speak with me today.") {
        t.Fatal("closing phrase should end the interview")
    }
}

func TestPhraseMatchIsCaseInsensitive(t *testing.T) {
    d := New(nil, 0)
    if !d.ShouldEnd(4, "We APPRECIATE YOUR INTEREST in this position.") {
        t.Fatal("matching should be case-insensitive")
    }
}

func TestLengthFallback(t *testing.T) {
    d := New(nil, 0)
    if !d.ShouldEnd(12, "Tell me about a project you are proud of.") {
        t.Fatal("12 messages should end the interview regardless of content")
    }
}

func TestNeutralShortConversationContinues(t *testing.T) {
    d := New(nil, 0)
    if d.ShouldEnd(3, "What draws you to this role?") {
        t.Fatal("neutral short conversation should continue")
    }
}

func TestCustomThreshold(t *testing.T) {
    d := New([]string{"goodbye"}, 6)
    if d.ShouldEnd(5, "next question") {
        t.Fatal("below threshold, no phrase: should continue")
    }
    if !d.ShouldEnd(6, "next question") {
        t.Fatal("at threshold: should end")
    }
    if !d.ShouldEnd(2, "Goodbye and good luck!") {
        t.Fatal("custom phrase: should end")
    }
}
