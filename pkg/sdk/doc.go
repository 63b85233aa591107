// Package questionbank embeds question bank duplicate detection in a Go
// program, backed by Redis (RediSearch) or PostgreSQL.
//
// The client keeps a candidate index of question projections and checks
// proposed questions against it, scoped to the caller's organization plus
// globally shared questions.
//
//	client, _ := questionbank.New(ctx, questionbank.WithRedis("localhost:6379", ""))
//	defer client.Close()
//
//	_, _ = client.Index().Ensure(ctx)
//	_, _ = client.Index().Upsert(ctx, []questionbank.Question{...})
//
//	matches, _ := client.Duplicates().Find(ctx, "org-1", questionbank.Query{
//	    Title:    "Add Two Numbers",
//	    Type:     questionbank.TypeCodeChallenge,
//	    Language: "javascript",
//	})
package questionbank
