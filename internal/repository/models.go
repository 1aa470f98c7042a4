package repository

// Models lists every row model, in dependency order, for AutoMigrate.
func Models() []any {
	return []any{
		&userModel{},
		&credentialModel{},
		&refreshTokenModel{},
		&clubModel{},
		&clubMemberModel{},
		&bookModel{},
		&userBookModel{},
		&readingListModel{},
		&readingListItemModel{},
	}
}
