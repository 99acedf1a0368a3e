/*
Package model contains the mutable object model of a flow definition.

A flow definition is a tree of nodes: the flow itself, its states, and the
attributes, actions, conditional branches, transitions and exception handlers
hanging off them. Documents are parsed into this model by the compiler and the
resulting trees are then composed through Merge to support flow inheritance.

# Merge semantics

Merging always composes a base with an overlay. Lists of keyed children use one
of two policies:

  - Additive (MergeList, MergeStates): an overlay element that is mergeable with
    a base element is merged into it in place; any other overlay element is
    appended. Unmatched base elements are kept in their original order.
  - Replace (ReplaceList): a non-empty overlay list wholly replaces the base
    list. Action lists (entry, exit, render, transition actions) use this.

Single-valued children, such as the security constraint, are overridden when
the overlay sets them.

Trees are not safe for concurrent use while a merge is in progress.
*/
package model
