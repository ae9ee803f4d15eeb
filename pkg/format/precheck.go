package format

import "strings"

// quickReplies answers bare greetings and acknowledgements without touching
// the classifier or any tool.
var quickReplies = map[string]string{
	"hi":           "Hey! What are we working on?",
	"hello":        "Hey! What are we working on?",
	"hey":          "Hey! What are we working on?",
	"yo":           "Yo! Ready to work?",
	"thanks":       "Anytime. Keep moving!",
	"thank you":    "Anytime. Keep moving!",
	"ok":           "Good. What's next?",
	"okay":         "Good. What's next?",
	"good morning": "Morning! Let's make it count.",
	"good night":   "Rest up. Tomorrow we go again.",
}

// QuickReply returns a canned reply for trivial messages, and whether the
// message qualifies for the bypass.
func QuickReply(message string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(message))
	key = strings.TrimRight(key, "!.?")
	reply, ok := quickReplies[key]
	return reply, ok
}
