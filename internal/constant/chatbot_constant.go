package constant

// Conversation roles persisted in the session message log.
const (
	ChatRoleUser    = "user"
	ChatRoleChatbot = "chatbot"
)

// Routing labels produced by intent classification.
const (
	IntentChitchat     = "CHITCHAT"
	IntentProductQuery = "PRODUCT_QUERY"
)

// Retrieval tuning. Fused search keeps HybridTopK candidates per sub-query;
// reranking narrows them to RerankTopK.
const (
	HybridTopK = 10
	RerankTopK = 5
)

// History window: 3 latest (query, answer) pairs.
const ChatHistoryLimit = 6

// Batch sizes for catalog synchronization.
const (
	SyncAllBatchSize       = 128
	SyncSpecificsBatchSize = 50
)

// EmptyContextMessage is rendered when retrieval produced no candidates.
// The generation prompt must never receive a blank context.
const EmptyContextMessage = "No products found matching the criteria."
