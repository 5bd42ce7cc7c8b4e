package protocol

// ContactsTopic carries the full contact roster broadcast. It is the only
// consumed topic that is not scoped to a single user.
const ContactsTopic = "listContacts"

// Outbound destinations the client publishes to.
const (
	DestAddUser           = "chat.addUser"
	DestSendMessage       = "chat.sendMessage"
	DestBlockContact      = "chat.blockContact"
	DestCheckBlockContact = "chat.checkBlockContact"
)

// UserTopic is the per-user direct message topic.
func UserTopic(email string) string {
	return "user/" + email
}

// OfflineTopic carries the batch of messages missed while offline.
func OfflineTopic(email string) string {
	return "messagesOffline/" + email
}

// BlockTopic carries block-action confirmations.
func BlockTopic(email string) string {
	return "userBlock/" + email
}

// CheckBlockTopic carries block-status resolution responses.
func CheckBlockTopic(email string) string {
	return "checkUserBlock/" + email
}
