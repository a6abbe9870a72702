// Package where builds the boolean expressions used in WHERE clauses.
//
// A Predicate is a single test on one field. It is a sealed interface with
// exactly two cases:
//   - Comparison: `field` OP literal, OP one of = <> < > >= <=
//   - Membership: `field` in (l1, l2, ...)
//
// An Expr folds predicates left to right. Every And/Or step wraps the
// accumulated text and the new predicate in parentheses, so mixing
// connectives never depends on SQL operator precedence:
//
//	where.New(where.Eq("user_id", sqlval.Int(1))).
//	    And(where.Eq("step", sqlval.Int(2))).
//	    Or(where.Eq("raw_id", sqlval.Int(3)))
//
// renders as
//
//	((`user_id` = 1 AND `step` = 2) OR `raw_id` = 3)
//
// Expr is an immutable value. And and Or return a new Expr and never
// modify the receiver, so an Expr can be shared freely.
//
// Serialization errors do not panic. The first error met while folding
// is kept in the Expr and returned by SQL; later steps are no-ops.
package where
