package common

// Version is the version of the vecops commands.
const Version = "1.0.0"
