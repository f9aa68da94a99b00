package analyze

// KnownSignature describes a well-known prior project by the keywords that
// betray its shape. Static registry data, read-only during a scan.
type KnownSignature struct {
	Name        string
	Description string
	URL         string
	Suggestion  string
	Keywords    []string
}

// knownSignatures is the offline signature registry. A project matching a
// signature's keywords is probably rebuilding something that already exists.
var knownSignatures = []KnownSignature{
	{
		Name:        "langchain",
		Description: "Framework for retrieval-augmented LLM applications",
		URL:         "https://pypi.org/project/langchain/",
		Suggestion:  "Consider building on langchain instead of a bespoke RAG stack",
		Keywords:    []string{"chromadb", "embedding", "vector", "retrieval", "search"},
	},
	{
		Name:        "litellm",
		Description: "Unified routing layer across LLM providers",
		URL:         "https://pypi.org/project/litellm/",
		Suggestion:  "Consider litellm for model routing instead of rolling your own",
		Keywords:    []string{"ollama", "openai", "model", "completion", "route"},
	},
	{
		Name:        "scrapy",
		Description: "Battle-tested web crawling and scraping framework",
		URL:         "https://pypi.org/project/scrapy/",
		Suggestion:  "Consider scrapy before writing another crawler",
		Keywords:    []string{"spider", "crawl", "scrape", "xpath", "selector"},
	},
	{
		Name:        "celery",
		Description: "Distributed task queue",
		URL:         "https://pypi.org/project/celery/",
		Suggestion:  "Consider celery for background task processing",
		Keywords:    []string{"task", "queue", "worker", "broker", "schedule"},
	},
	{
		Name:        "in-toto",
		Description: "Supply-chain provenance and attestation framework",
		URL:         "https://pypi.org/project/in-toto/",
		Suggestion:  "Consider in-toto for provenance tracking",
		Keywords:    []string{"audit", "attestation", "provenance", "signing", "trust"},
	},
}

// KnownSignatures returns the offline signature registry.
func KnownSignatures() []KnownSignature {
	return knownSignatures
}
