// Package domain contains the core business entities of IdeaFlow: users,
// generation requests, generated video idea content and the saved ideas that
// make up a creator's library and content calendar. It is independent of any
// storage or delivery mechanism.
package domain
