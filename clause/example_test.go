package clause_test

import (
	"fmt"
	"strings"

	"github.com/syssam/sqlclause/clause"
	"github.com/syssam/sqlclause/record"
	"github.com/syssam/sqlclause/schema"
	"github.com/syssam/sqlclause/schema/field"
)

func ExampleSetWhere() {
	s := schema.MustNew([]*field.Descriptor{
		field.New("id").Set(field.AsWhere()).Descriptor(),
		field.New("title").Optional().Set().Descriptor(),
		field.New("description").Optional().Set().Descriptor(),
		field.New("updated_at").Set(field.Value("now()")).Descriptor(),
	}, schema.WithDialect("postgres"))

	res, err := clause.SetWhere(s, record.Map{"id": 1, "title": "hello"})
	if err != nil {
		panic(err)
	}
	fmt.Printf("UPDATE posts SET %s WHERE %s\n", strings.Join(res.Set, ", "), strings.Join(res.Where, " AND "))
	// Output: UPDATE posts SET title = $1, updated_at = now() WHERE id = $2
}

func ExampleValues() {
	s := schema.MustNew([]*field.Descriptor{
		field.New("id").Descriptor(),
		field.New("secret").Values(field.Ignore()).Fields(field.Ignore()).Descriptor(),
		field.New("email").Values(field.Index(4)).Descriptor(),
		field.New("created_at").Values(field.Value("now()")).Descriptor(),
	}, schema.WithDialect("postgres"))

	res, err := clause.Values(s)
	if err != nil {
		panic(err)
	}
	fmt.Println(clause.Fields(s))
	fmt.Println(res.Fragments, res.Next)
	// Output:
	// [id email created_at]
	// [$1 $4 now()] 2
}

func ExampleWhere() {
	s := schema.MustNew([]*field.Descriptor{
		field.New("keyword").Optional().Where(field.ConditionAll("title LIKE {index}")).Descriptor(),
		field.New("start_time").Optional().Where(field.Condition(">=")).Descriptor(),
		field.New("kind").Where().Descriptor(),
	}, schema.WithDialect("mysql"))

	res, err := clause.Where(s, record.Map{"keyword": "%go%", "kind": 1})
	if err != nil {
		panic(err)
	}
	fmt.Println(strings.Join(res.Fragments, " AND "))
	// Output: title LIKE ? AND kind = ?
}
