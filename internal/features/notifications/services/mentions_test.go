package notifications_services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_IsMentioned_ExactMention_Matches(t *testing.T) {
	assert.True(t, IsMentioned("hey @alice, can you look at this?", "alice"))
}

func Test_IsMentioned_DifferentCase_Matches(t *testing.T) {
	assert.True(t, IsMentioned("ping @ALICE about the deploy", "Alice"))
	assert.True(t, IsMentioned("ping @alice about the deploy", "ALICE"))
}

func Test_IsMentioned_MentionAtEndOfMessage_Matches(t *testing.T) {
	assert.True(t, IsMentioned("this one is for @bob", "bob"))
}

func Test_IsMentioned_NameIsPrefixOfLongerMention_DoesNotMatch(t *testing.T) {
	assert.False(t, IsMentioned("ask @annette instead", "ann"))
}

func Test_IsMentioned_PrefixMentionFollowedByRealOne_Matches(t *testing.T) {
	assert.True(t, IsMentioned("@annette and @ann should both know", "ann"))
}

func Test_IsMentioned_NoAtSign_DoesNotMatch(t *testing.T) {
	assert.False(t, IsMentioned("alice already knows", "alice"))
}

func Test_IsMentioned_MultiWordDisplayName_Matches(t *testing.T) {
	assert.True(t, IsMentioned("cc @Mary Jane on this", "Mary Jane"))
}

func Test_IsMentioned_EmptyDisplayName_NeverMatches(t *testing.T) {
	assert.False(t, IsMentioned("anything @ all", ""))
	assert.False(t, IsMentioned("anything @ all", "   "))
}

func Test_IsMentioned_PunctuationAfterMention_Matches(t *testing.T) {
	assert.True(t, IsMentioned("thanks @carol!", "carol"))
	assert.True(t, IsMentioned("(@carol)", "carol"))
}
