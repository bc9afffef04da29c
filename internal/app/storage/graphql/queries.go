package graphql

// GraphQL documents. Field selections match the wire DTOs exactly.

const productSelection = `
    id name description basePrice imageUrl categoryId collectionIds isNew isPublished
    inventory { colorId sizeId quantity }
    createdAt updatedAt`

const (
	queryProducts = `query Products($limit: Int!, $offset: Int!, $filter: ProductFilter, $sort: SortInput) {
  products(limit: $limit, offset: $offset, filter: $filter, sort: $sort) {
    items {` + productSelection + `
    }
    count
  }
}`

	queryProduct = `query Product($id: ID!) {
  product(id: $id) {` + productSelection + `
  }
}`

	mutationCreateProduct = `mutation CreateProduct($input: ProductInput!) {
  createProduct(input: $input) {` + productSelection + `
  }
}`

	mutationUpdateProduct = `mutation UpdateProduct($id: ID!, $input: ProductInput!) {
  updateProduct(id: $id, input: $input) {` + productSelection + `
  }
}`

	mutationDeleteProduct = `mutation DeleteProduct($id: ID!) {
  deleteProduct(id: $id)
}`

	mutationSetInventory = `mutation SetInventory($productId: ID!, $levels: [InventoryLevelInput!]!) {
  setInventory(productId: $productId, levels: $levels) {` + productSelection + `
  }
}`
)

const categorySelection = ` id name slug createdAt updatedAt `

const (
	queryCategories = `query Categories($limit: Int!, $offset: Int!, $filter: CategoryFilter, $sort: SortInput) {
  categories(limit: $limit, offset: $offset, filter: $filter, sort: $sort) {
    items {` + categorySelection + `}
    count
  }
}`

	mutationCreateCategory = `mutation CreateCategory($input: CategoryInput!) {
  createCategory(input: $input) {` + categorySelection + `}
}`

	mutationUpdateCategory = `mutation UpdateCategory($id: ID!, $input: CategoryInput!) {
  updateCategory(id: $id, input: $input) {` + categorySelection + `}
}`

	mutationDeleteCategory = `mutation DeleteCategory($id: ID!) {
  deleteCategory(id: $id)
}`
)

const colorSelection = ` id name hex createdAt updatedAt `

const (
	queryColors = `query Colors($limit: Int!, $offset: Int!, $filter: ColorFilter, $sort: SortInput) {
  colors(limit: $limit, offset: $offset, filter: $filter, sort: $sort) {
    items {` + colorSelection + `}
    count
  }
}`

	mutationCreateColor = `mutation CreateColor($input: ColorInput!) {
  createColor(input: $input) {` + colorSelection + `}
}`

	mutationUpdateColor = `mutation UpdateColor($id: ID!, $input: ColorInput!) {
  updateColor(id: $id, input: $input) {` + colorSelection + `}
}`

	mutationDeleteColor = `mutation DeleteColor($id: ID!) {
  deleteColor(id: $id)
}`
)

const sizeSelection = ` id name sortOrder createdAt updatedAt `

const (
	querySizes = `query Sizes($limit: Int!, $offset: Int!, $filter: SizeFilter, $sort: SortInput) {
  sizes(limit: $limit, offset: $offset, filter: $filter, sort: $sort) {
    items {` + sizeSelection + `}
    count
  }
}`

	mutationCreateSize = `mutation CreateSize($input: SizeInput!) {
  createSize(input: $input) {` + sizeSelection + `}
}`

	mutationUpdateSize = `mutation UpdateSize($id: ID!, $input: SizeInput!) {
  updateSize(id: $id, input: $input) {` + sizeSelection + `}
}`

	mutationDeleteSize = `mutation DeleteSize($id: ID!) {
  deleteSize(id: $id)
}`
)

const collectionSelection = ` id name slug description createdAt updatedAt `

const (
	queryCollections = `query Collections($limit: Int!, $offset: Int!, $filter: CollectionFilter, $sort: SortInput) {
  collections(limit: $limit, offset: $offset, filter: $filter, sort: $sort) {
    items {` + collectionSelection + `}
    count
  }
}`

	mutationCreateCollection = `mutation CreateCollection($input: CollectionInput!) {
  createCollection(input: $input) {` + collectionSelection + `}
}`

	mutationUpdateCollection = `mutation UpdateCollection($id: ID!, $input: CollectionInput!) {
  updateCollection(id: $id, input: $input) {` + collectionSelection + `}
}`

	mutationDeleteCollection = `mutation DeleteCollection($id: ID!) {
  deleteCollection(id: $id)
}`
)

const postSelection = `
    id title slug excerpt content imageUrl tagIds status publishedAt createdAt updatedAt`

const (
	queryPosts = `query Posts($limit: Int!, $offset: Int!, $filter: PostFilter, $sort: SortInput) {
  posts(limit: $limit, offset: $offset, filter: $filter, sort: $sort) {
    items {` + postSelection + `
    }
    count
  }
}`

	queryPost = `query Post($id: ID!) {
  post(id: $id) {` + postSelection + `
  }
}`

	mutationCreatePost = `mutation CreatePost($input: PostInput!) {
  createPost(input: $input) {` + postSelection + `
  }
}`

	mutationUpdatePost = `mutation UpdatePost($id: ID!, $input: PostInput!) {
  updatePost(id: $id, input: $input) {` + postSelection + `
  }
}`

	mutationDeletePost = `mutation DeletePost($id: ID!) {
  deletePost(id: $id)
}`
)

const tagSelection = ` id name slug createdAt updatedAt `

const (
	queryTags = `query Tags($limit: Int!, $offset: Int!, $filter: TagFilter, $sort: SortInput) {
  tags(limit: $limit, offset: $offset, filter: $filter, sort: $sort) {
    items {` + tagSelection + `}
    count
  }
}`

	mutationCreateTag = `mutation CreateTag($input: TagInput!) {
  createTag(input: $input) {` + tagSelection + `}
}`

	mutationDeleteTag = `mutation DeleteTag($id: ID!) {
  deleteTag(id: $id)
}`
)

const orderSelection = `
    id customerId status total placedAt updatedAt
    lines { productId productName colorId sizeId quantity unitPrice }`

const (
	queryOrders = `query Orders($limit: Int!, $offset: Int!, $filter: OrderFilter, $sort: SortInput) {
  orders(limit: $limit, offset: $offset, filter: $filter, sort: $sort) {
    items {` + orderSelection + `
    }
    count
  }
}`

	queryOrder = `query Order($id: ID!) {
  order(id: $id) {` + orderSelection + `
  }
}`

	mutationUpdateOrderStatus = `mutation UpdateOrderStatus($id: ID!, $status: OrderStatus!) {
  updateOrderStatus(id: $id, status: $status) {` + orderSelection + `
  }
}`

	mutationPlaceOrder = `mutation PlaceOrder($input: OrderInput!) {
  placeOrder(input: $input) {` + orderSelection + `
  }
}`
)

const customerSelection = ` id displayName username email isAdmin createdAt updatedAt `

const (
	queryCustomers = `query Customers($limit: Int!, $offset: Int!, $filter: CustomerFilter, $sort: SortInput) {
  customers(limit: $limit, offset: $offset, filter: $filter, sort: $sort) {
    items {` + customerSelection + `}
    count
  }
}`

	queryCustomer = `query Customer($id: ID!) {
  customer(id: $id) {` + customerSelection + `}
}`

	mutationLogin = `mutation Login($identifier: String!, $password: String!) {
  login(identifier: $identifier, password: $password) {
    token
    user {` + customerSelection + `}
  }
}`
)
