// Package compound assembles JSON:API compound documents.
//
// A Document holds primary data (a single Resource, a Collection, or nothing) and
// gathers every related resource reachable through relationships into the
// included section. Related resources are deduplicated by type and id; when the
// same logical resource is reached through several paths, the observations are
// merged into one entry. Resources without attributes are treated as bare
// references and never appear in included, although their relationships are
// still followed.
//
// Example:
//
//	author := compound.NewResource("people", "9").SetAttribute("name", "Dan")
//	post := compound.NewResource("posts", "1").
//	    SetAttribute("title", "Hello").
//	    AddRelationship(compound.NewRelationship("author", author))
//
//	doc := compound.NewDocument().SetData(post).AddLink("self", "/posts/1")
//	out, err := json.Marshal(doc)
//
// A Document is not safe for concurrent use; build one per response.
package compound
