// Package gqlapi exposes the user stores through a GraphQL schema.
package gqlapi

import (
	graphql "github.com/graph-gophers/graphql-go"
)

const schemaString = `
	schema {
		query: Query
		mutation: Mutation
	}

	type User {
		id: Int!
		name: String!
		email: String!
		age: Int!
	}

	type DBUser {
		id: Int!
		name: String!
		email: String!
		age: Int!
	}

	input UserSearchInput {
		name: String
		email: String
		age: Int
	}

	input UserCreateInput {
		name: String!
		email: String!
		age: Int!
	}

	type Query {
		allUsers: [User]
		userById(id: Int!): User
		searchUsers(input: UserSearchInput!): [User]
		dbUsers: [DBUser]
		dbUserById(id: Int!): DBUser
	}

	type Mutation {
		createUser(input: UserCreateInput!): User
		updateUser(id: Int!, name: String, email: String, age: Int): User
		deleteUser(id: Int!): Boolean
		resetUsers: Boolean
	}
`

// NewSchema parses the API schema and binds it to res.
// It panics if res does not satisfy the schema.
func NewSchema(res *Resolver) *graphql.Schema {
	return graphql.MustParseSchema(schemaString, res)
}
