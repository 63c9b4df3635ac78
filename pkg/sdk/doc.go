// Package wikisearch embeds the wikisearch term index in a Go program,
// backed by Redis, Valkey or an SQLite file.
//
// # Indexing
//
//	client, _ := wikisearch.New(ctx, wikisearch.WithSQLite("data/wiki.db"))
//	defer client.Close()
//	_, _ = client.IndexURL(ctx, "https://en.wikipedia.org/wiki/Java_(programming_language)", false)
//
// # Querying
//
// Queries are trees built from terms and the and, or, minus operators. The
// relevance of a document is the sum of its term counts.
//
//	q := wikisearch.Minus(
//	    wikisearch.Or(wikisearch.Term("java"), wikisearch.Term("programming")),
//	    wikisearch.Term("coffee"),
//	)
//	hits, _ := client.Search(ctx, q, wikisearch.Descending)
package wikisearch
