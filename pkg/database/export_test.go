package database

var ReleaseMigrationLock = releaseMigrationLock
