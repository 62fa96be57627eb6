// Package introspection obtains a schema from a live GraphQL endpoint:
// it runs the standard introspection query through any executor and
// decodes the response into the adapter schema model.
package introspection

// Query is the standard introspection operation, covering everything
// the template engine needs: root type names, field and argument
// definitions, input object fields, enum values, and union/interface
// member types.
const Query = `query IntrospectionQuery {
	__schema {
		queryType { name }
		mutationType { name }
		types {
			...FullType
		}
	}
}
fragment FullType on __Type {
	kind
	name
	description
	fields(includeDeprecated: true) {
		name
		description
		args {
			...InputValue
		}
		type { ...TypeRef }
	}
	inputFields {
		...InputValue
	}
	enumValues(includeDeprecated: true) {
		name
		description
	}
	possibleTypes { ...TypeRef }
}
fragment InputValue on __InputValue {
	name
	description
	type { ...TypeRef }
}
fragment TypeRef on __Type {
	kind
	name
	ofType {
		kind
		name
		ofType {
			kind
			name
			ofType {
				kind
				name
				ofType {
					kind
					name
					ofType {
						kind
						name
						ofType {
							kind
							name
							ofType {
								kind
								name
							}
						}
					}
				}
			}
		}
	}
}`
